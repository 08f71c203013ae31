package counter_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/storage"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStorage) Put(_ context.Context, key string, r io.Reader, size int64, opts ...storage.Option) (*storage.ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return &storage.ObjectInfo{Key: key, Size: size}, nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Head(_ context.Context, key string) (*storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func TestObjectStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	objects := newMemStorage()
	s := counter.NewObjectStore(objects, "stats/happy-patients.json", 400)

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 400, snap.HappyPatients)

	snap, err = s.Add(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 402, snap.HappyPatients)
	assert.Contains(t, string(objects.objects["stats/happy-patients.json"]), `"happyPatients":402`)

	snap, err = s.Set(ctx, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, snap.HappyPatients)

	snap, err = s.Load(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, snap.HappyPatients)

	objects.objects["stats/happy-patients.json"] = []byte("[]")
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, counter.ErrCorrupt)
}
