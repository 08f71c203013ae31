package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ksmdental/clinic/pkg/storage"
)

// ObjectStore keeps the document in object storage. Read-modify-write is
// serialised within the process only.
type ObjectStore struct {
	store storage.Storage
	now   func() time.Time
	key   string
	seed  int64
	mu    sync.Mutex
}

func NewObjectStore(store storage.Storage, key string, seed int64) *ObjectStore {
	return &ObjectStore{store: store, key: key, seed: seed, now: time.Now}
}

func (s *ObjectStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *ObjectStore) Add(ctx context.Context, delta int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if cur.HappyPatients+delta < 0 {
		return Snapshot{}, ErrNegative
	}
	return s.write(ctx, cur.HappyPatients+delta)
}

func (s *ObjectStore) Set(ctx context.Context, n int64) (Snapshot, error) {
	if n < 0 {
		return Snapshot{}, ErrNegative
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, n)
}

func (s *ObjectStore) read(ctx context.Context) (Snapshot, error) {
	rc, err := s.store.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return seeded(s.seed), nil
	}
	if err != nil {
		return Snapshot{}, errors.Join(ErrRead, err)
	}
	defer rc.Close()

	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return Snapshot{}, errors.Join(ErrCorrupt, err)
	}
	return snap, validate(snap)
}

func (s *ObjectStore) write(ctx context.Context, n int64) (Snapshot, error) {
	snap := Snapshot{HappyPatients: n, UpdatedAt: s.now().UTC()}
	data, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	_, err = s.store.Put(ctx, s.key, bytes.NewReader(data), int64(len(data)),
		storage.WithContentType("application/json"),
		storage.WithCacheControl("no-store"),
	)
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	return snap, nil
}
