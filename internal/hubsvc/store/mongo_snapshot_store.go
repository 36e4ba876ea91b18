package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SnapshotCollection = "hub_snapshots"

type mongoSnapshot struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	SavedAt   time.Time `bson:"saved_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoSnapshotStore keeps snapshots in a collection whose TTL index
// drops them after ttl.
type MongoSnapshotStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewMongoSnapshotStore(db *mongo.Database, ttl time.Duration) *MongoSnapshotStore {
	return &MongoSnapshotStore{
		coll: db.Collection(SnapshotCollection),
		ttl:  ttl,
	}
}

func (s *MongoSnapshotStore) Save(ctx context.Context, key string, payload []byte) error {
	now := time.Now().UTC()
	doc := mongoSnapshot{
		Key:       key,
		Payload:   payload,
		SavedAt:   now,
		ExpiresAt: now.Add(s.ttl),
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *MongoSnapshotStore) Load(ctx context.Context, key string) (*Snapshot, bool, error) {
	var doc mongoSnapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	// the TTL monitor runs about once a minute
	now := time.Now()
	if (!doc.ExpiresAt.IsZero() && now.After(doc.ExpiresAt)) || expired(doc.SavedAt, now, s.ttl) {
		return nil, false, nil
	}

	return &Snapshot{Key: doc.Key, Payload: doc.Payload, SavedAt: doc.SavedAt}, true, nil
}
