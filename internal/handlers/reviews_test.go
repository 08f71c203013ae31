package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/pkg/places"
)

func TestReviews(t *testing.T) {
	t.Parallel()

	when := "2026-09-01T10:00:00Z"
	tests := []struct {
		name    string
		reviews []places.Review
		err     error
		count   int
		message string
	}{
		{
			name: "ok",
			reviews: []places.Review{
				{Name: "Meera", Text: "Painless!", Rating: 5, Time: &when},
				{Name: "Anonymous", Rating: 4},
			},
			count: 2,
		},
		{
			name:  "empty list is an array",
			count: 0,
		},
		{
			name:    "not configured",
			err:     places.ErrNotConfigured,
			message: "Google Places API not configured. Please add GOOGLE_PLACES_API_KEY and GOOGLE_PLACE_ID to your environment variables.",
		},
		{
			name:    "unavailable",
			err:     errors.Join(places.ErrUnavailable, errors.New("legacy status 403")),
			message: "Unable to fetch reviews from Google. Please check your API configuration.",
		},
		{
			name:    "fetch error",
			err:     errors.Join(places.ErrFetch, errors.New("dial tcp: timeout")),
			message: "Error fetching reviews. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := new(mockPlaces)
			src.On("Reviews", mock.Anything).Return(tt.reviews, tt.err)
			app := newApp(handlers.NewReviews(src))

			rec, body := do(t, app, http.MethodGet, "/api/reviews", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, true, body["ok"])
			list, ok := body["reviews"].([]any)
			require.True(t, ok, "reviews must be a JSON array")
			assert.Len(t, list, tt.count)
			if tt.message == "" {
				assert.NotContains(t, body, "message")
			} else {
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}
