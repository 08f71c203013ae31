package ratelimit

import (
	"context"
	"sync"
	"time"
)

type keyWindow struct {
	slot     int64
	count    int
	lastSeen time.Time
}

// Memory counts requests per key in fixed windows aligned to the epoch, the
// same way Redis does. Idle keys are dropped by a janitor goroutine; call
// Close to stop it.
type Memory struct {
	now     func() time.Time
	windows map[string]*keyWindow
	done    chan struct{}
	window  time.Duration
	limit   int
	idleTTL time.Duration
	mu      sync.Mutex
	once    sync.Once
}

// MemoryOption configures a Memory limiter.
type MemoryOption func(*Memory)

// WithIdleTTL sets how long an unused key is kept. Default: 2×window.
func WithIdleTTL(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.idleTTL = d
		}
	}
}

func withClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory allows limit requests per window per key.
func NewMemory(limit int, window time.Duration, opts ...MemoryOption) (*Memory, error) {
	if err := (Config{Limit: limit, Window: window}).validate(); err != nil {
		return nil, err
	}
	m := &Memory{
		now:     time.Now,
		windows: make(map[string]*keyWindow),
		done:    make(chan struct{}),
		window:  window,
		limit:   limit,
		idleTTL: 2 * window,
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.janitor(max(m.idleTTL/2, time.Second))
	return m, nil
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	slot := slotOf(now, m.window)

	m.mu.Lock()
	w, ok := m.windows[key]
	if !ok {
		w = &keyWindow{}
		m.windows[key] = w
	}
	if w.slot != slot {
		w.slot, w.count = slot, 0
	}
	w.count++
	w.lastSeen = now
	count := w.count
	m.mu.Unlock()

	return decide(now, slot, m.window, m.limit, count), nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) sweep() {
	cutoff := m.now().Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, w := range m.windows {
		if w.lastSeen.Before(cutoff) {
			delete(m.windows, k)
		}
	}
}

func (m *Memory) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-t.C:
			m.sweep()
		}
	}
}
