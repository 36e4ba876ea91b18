package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgSnapshotStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
	now func() time.Time
}

func NewPgSnapshotStore(db *pgxpool.Pool, ttl time.Duration) *PgSnapshotStore {
	return &PgSnapshotStore{db: db, ttl: ttl, now: time.Now}
}

func (s *PgSnapshotStore) Save(ctx context.Context, key string, payload []byte) error {
	const query = `
		INSERT INTO hub_snapshots (key, payload, saved_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at
	`

	if _, err := s.db.Exec(ctx, query, key, payload); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PgSnapshotStore) Load(ctx context.Context, key string) (*Snapshot, bool, error) {
	query := `
		SELECT key, payload, saved_at
		FROM hub_snapshots
		WHERE key = $1
	`

	snap := &Snapshot{}
	err := s.db.QueryRow(ctx, query, key).Scan(
		&snap.Key,
		&snap.Payload,
		&snap.SavedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	// rows are kept; an expired one is overwritten by the next Save
	if expired(snap.SavedAt, s.now(), s.ttl) {
		return nil, false, nil
	}

	return snap, true, nil
}
