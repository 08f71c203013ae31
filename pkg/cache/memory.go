package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// WithDefaultTTL sets the expiration used when Set gets a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are purged.
// Zero disables the janitor; expired entries are then dropped on read.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.cleanupInterval = d }
}

// WithMaxEntries caps the number of entries. When full, the entry closest
// to expiry is evicted. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) { o.maxEntries = n }
}

type memoryEntry[V any] struct {
	expiresAt time.Time // zero = never
	value     V
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is a mutex-guarded map with per-entry expiry.
type Memory[V any] struct {
	items  map[string]memoryEntry[V]
	opts   memoryOptions
	now    func() time.Time
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory cache. Call Close to stop the janitor.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := memoryOptions{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Memory[V]{
		items: make(map[string]memoryEntry[V]),
		opts:  o,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}
	e, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(m.now()) {
		delete(m.items, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if _, exists := m.items[key]; !exists && m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.evictLocked()
	}
	m.items[key] = memoryEntry[V]{value: value, expiresAt: expiresAt}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor and drops all entries. It is safe to call twice.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	clear(m.items)
	return nil
}

// evictLocked drops expired entries, or the one expiring soonest if none are.
func (m *Memory[V]) evictLocked() {
	now := m.now()
	var (
		victim string
		soonest time.Time
	)
	for k, e := range m.items {
		if e.expired(now) {
			delete(m.items, k)
			continue
		}
		if e.expiresAt.IsZero() {
			continue
		}
		if soonest.IsZero() || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	if len(m.items) < m.opts.maxEntries {
		return
	}
	if victim == "" {
		// Only non-expiring entries left; drop an arbitrary one.
		for k := range m.items {
			victim = k
			break
		}
	}
	delete(m.items, victim)
}

func (m *Memory[V]) purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.items {
		if e.expired(now) {
			delete(m.items, k)
		}
	}
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.purge()
		case <-m.done:
			return
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
