package counter

import (
	"context"
	"errors"
	"time"
)

const DefaultSeed = 400

// Backends accepted by Config.Backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendS3    = "s3"
)

var (
	ErrNegative = errors.New("counter: value must not be negative")
	ErrCorrupt  = errors.New("counter: stored document is invalid")
	ErrRead     = errors.New("counter: read failed")
	ErrWrite    = errors.New("counter: write failed")
)

// Snapshot is the stored document.
type Snapshot struct {
	UpdatedAt     time.Time `json:"updatedAt"`
	HappyPatients int64     `json:"happyPatients"`
}

// Store persists the counter.
type Store interface {
	// Load returns the current value, or the seed when nothing is stored yet.
	Load(ctx context.Context) (Snapshot, error)
	// Add increments by delta and returns the new value.
	Add(ctx context.Context, delta int64) (Snapshot, error)
	// Set overwrites the value.
	Set(ctx context.Context, n int64) (Snapshot, error)
}

// Config selects and configures the backend.
type Config struct {
	Backend  string        `env:"COUNTER_BACKEND" envDefault:"file"`
	File     string        `env:"COUNTER_FILE" envDefault:"data/stats.json"`
	Key      string        `env:"COUNTER_KEY" envDefault:"stats/happy-patients.json"`
	Seed     int64         `env:"DEFAULT_PATIENT_COUNT" envDefault:"400"`
	CacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"60s"`
}

// Healthcheck reports whether the store can be read.
func Healthcheck(s Store) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.Load(ctx)
		return err
	}
}

func seeded(seed int64) Snapshot {
	return Snapshot{HappyPatients: seed}
}

func validate(s Snapshot) error {
	if s.HappyPatients < 0 {
		return ErrCorrupt
	}
	return nil
}
