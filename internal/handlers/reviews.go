package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/places"
)

const (
	msgReviewsNotConfigured = "Google Places API not configured. Please add GOOGLE_PLACES_API_KEY and GOOGLE_PLACE_ID to your environment variables."
	msgReviewsUnavailable   = "Unable to fetch reviews from Google. Please check your API configuration."
	msgReviewsError         = "Error fetching reviews. Please try again later."
)

// ReviewSource returns normalised Google reviews.
type ReviewSource interface {
	Reviews(ctx context.Context) ([]places.Review, error)
}

// Reviews serves GET /api/reviews. It always answers 200; failures are
// reported in the message field with an empty list.
type Reviews struct {
	source ReviewSource
}

func NewReviews(src ReviewSource) *Reviews {
	return &Reviews{source: src}
}

func (h *Reviews) Routes(r internal.Router) {
	r.GET("/api/reviews", h.list)
}

type reviewsResponse struct {
	Message string          `json:"message,omitempty"`
	Reviews []places.Review `json:"reviews"`
	OK      bool            `json:"ok"`
}

func (h *Reviews) list(c internal.Context) error {
	reviews, err := h.source.Reviews(c.Context())
	if err == nil {
		if reviews == nil {
			reviews = []places.Review{}
		}
		return c.JSON(http.StatusOK, reviewsResponse{OK: true, Reviews: reviews})
	}

	resp := reviewsResponse{OK: true, Reviews: []places.Review{}}
	switch {
	case errors.Is(err, places.ErrNotConfigured):
		resp.Message = msgReviewsNotConfigured
	case errors.Is(err, places.ErrUnavailable):
		c.LogWarn("google reviews unavailable", slog.Any("error", err))
		resp.Message = msgReviewsUnavailable
	default:
		c.LogError("google reviews fetch failed", slog.Any("error", err))
		resp.Message = msgReviewsError
	}
	return c.JSON(http.StatusOK, resp)
}
