package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/places"
)

// RatingSource reports the Google review count.
type RatingSource interface {
	RatingCount(ctx context.Context) (int, error)
}

// Stats serves GET /api/stats.
type Stats struct {
	ratings RatingSource
	counter counter.Store
	cfg     Config
}

func NewStats(ratings RatingSource, store counter.Store, cfg Config) *Stats {
	return &Stats{ratings: ratings, counter: store, cfg: cfg}
}

func (h *Stats) Routes(r internal.Router) {
	r.GET("/api/stats", h.get)
}

type statsBody struct {
	Reviews         int   `json:"reviews"`
	YearsExperience int   `json:"yearsExperience"`
	HappyPatients   int64 `json:"happyPatients"`
}

// get fetches both numbers concurrently. Each source falls back to its
// configured default on failure, so the group only fails on a bug.
func (h *Stats) get(c internal.Context) error {
	body := statsBody{
		Reviews:         h.cfg.ReviewsFallback,
		YearsExperience: h.cfg.YearsExperience,
		HappyPatients:   h.cfg.PatientsFallback,
	}

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		n, err := h.ratings.RatingCount(ctx)
		switch {
		case errors.Is(err, places.ErrNotConfigured):
		case err != nil:
			c.LogWarn("review count unavailable, using fallback", slog.Any("error", err))
		case n > 0:
			body.Reviews = n
		}
		return nil
	})
	g.Go(func() error {
		snap, err := h.counter.Load(ctx)
		if err != nil {
			c.LogError("patient counter unavailable, using fallback", slog.Any("error", err))
			return nil
		}
		body.HappyPatients = snap.HappyPatients
		return nil
	})
	if err := g.Wait(); err != nil {
		return internal.ErrInternal("Failed to fetch stats", internal.WithError(err))
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true, "stats": body})
}
