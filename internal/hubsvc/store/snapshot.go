package store

import (
	"context"
	"sync"
	"time"
)

// Snapshot is the last successful payload fetched for a key. Read paths
// fall back to it when the hub API is unavailable.
type Snapshot struct {
	Key     string
	Payload []byte
	SavedAt time.Time
}

// SnapshotStore keeps one snapshot per key. Load reports false when the key
// was never saved or is older than the store's ttl.
type SnapshotStore interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) (*Snapshot, bool, error)
}

// expired reports whether a snapshot saved at savedAt is past ttl. A
// non-positive ttl never expires.
func expired(savedAt, now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(savedAt) > ttl
}

type MemorySnapshotStore struct {
	mu    sync.RWMutex
	items map[string]Snapshot
	ttl   time.Duration
	now   func() time.Time
}

func NewMemorySnapshotStore(ttl time.Duration) *MemorySnapshotStore {
	return &MemorySnapshotStore{
		items: make(map[string]Snapshot),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = Snapshot{
		Key:     key,
		Payload: append([]byte(nil), payload...),
		SavedAt: s.now(),
	}
	return nil
}

func (s *MemorySnapshotStore) Load(ctx context.Context, key string) (*Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.items[key]
	if !ok || expired(snap.SavedAt, s.now(), s.ttl) {
		return nil, false, nil
	}
	snap.Payload = append([]byte(nil), snap.Payload...)
	return &snap, true, nil
}
