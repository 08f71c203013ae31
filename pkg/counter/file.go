package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps the document in a local JSON file. Writes go to a temp
// file in the same directory and are renamed over the original.
// Concurrent writers in one process are serialised; several processes
// sharing a file are not.
type FileStore struct {
	now  func() time.Time
	path string
	seed int64
	mu   sync.Mutex
}

// NewFileStore returns a store at path. The file and its directory are
// created on the first write.
func NewFileStore(path string, seed int64) *FileStore {
	return &FileStore{path: path, seed: seed, now: time.Now}
}

func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Add(ctx context.Context, delta int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.read()
	if err != nil {
		return Snapshot{}, err
	}
	next := cur.HappyPatients + delta
	if next < 0 {
		return Snapshot{}, ErrNegative
	}
	return s.write(next)
}

func (s *FileStore) Set(ctx context.Context, n int64) (Snapshot, error) {
	if n < 0 {
		return Snapshot{}, ErrNegative
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(n)
}

func (s *FileStore) read() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return seeded(s.seed), nil
	}
	if err != nil {
		return Snapshot{}, errors.Join(ErrRead, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Join(ErrCorrupt, err)
	}
	if err := validate(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *FileStore) write(n int64) (Snapshot, error) {
	snap := Snapshot{HappyPatients: n, UpdatedAt: s.now().UTC()}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".counter-*.json")
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return Snapshot{}, fmt.Errorf("%w: rename %s: %w", ErrWrite, s.path, err)
	}
	return snap, nil
}
