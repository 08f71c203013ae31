package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ksmdental/clinic/pkg/cache"
	"github.com/ksmdental/clinic/pkg/sanitizer"
)

const (
	reviewsFieldMask = "reviews.authorAttribution.displayName,reviews.text.text,reviews.rating," +
		"reviews.publishTime,reviews.relativePublishTimeDescription,displayName,rating"
	ratingFieldMask = "rating,userRatingCount"

	defaultName   = "Anonymous"
	defaultRating = 5

	maxBody = 1 << 20
)

var (
	ErrNotConfigured = errors.New("places: api key or place id not configured")
	// ErrUnavailable means both APIs answered without usable reviews.
	ErrUnavailable = errors.New("places: reviews unavailable")
	// ErrFetch covers transport failures, timeouts and undecodable bodies.
	ErrFetch = errors.New("places: fetch failed")
)

// Config holds API credentials and endpoints.
type Config struct {
	APIKey        string        `env:"GOOGLE_PLACES_API_KEY"`
	PlaceID       string        `env:"GOOGLE_PLACE_ID"`
	BaseURL       string        `env:"PLACES_BASE_URL" envDefault:"https://places.googleapis.com"`
	LegacyBaseURL string        `env:"PLACES_LEGACY_BASE_URL" envDefault:"https://maps.googleapis.com"`
	Timeout       time.Duration `env:"PLACES_TIMEOUT" envDefault:"8s"`
	CacheTTL      time.Duration `env:"PLACES_CACHE_TTL" envDefault:"10m"`
	// MaxRPS caps outbound calls per second across both APIs. Zero disables it.
	MaxRPS float64 `env:"PLACES_MAX_RPS" envDefault:"5"`
}

// Configured reports whether both the key and the place id are set.
func (c Config) Configured() bool {
	return c.APIKey != "" && c.PlaceID != ""
}

// Review is the normalised review shape served to the site.
type Review struct {
	Time                    *string `json:"time"`
	RelativeTimeDescription *string `json:"relativeTimeDescription"`
	Name                    string  `json:"name"`
	Text                    string  `json:"text"`
	Rating                  int     `json:"rating"`
}

// Client talks to both Places APIs.
type Client struct {
	http     *http.Client
	cache    cache.Cache[[]Review]
	throttle *rate.Limiter
	cfg      Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache keeps successful review lists for Config.CacheTTL.
func WithCache(rc cache.Cache[[]Review]) Option {
	return func(c *Client) { c.cache = rc }
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://places.googleapis.com"
	}
	if cfg.LegacyBaseURL == "" {
		cfg.LegacyBaseURL = "https://maps.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	c := &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
	if cfg.MaxRPS > 0 {
		c.throttle = rate.NewLimiter(rate.Limit(cfg.MaxRPS), max(int(cfg.MaxRPS), 1))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether requests can be made.
func (c *Client) Configured() bool { return c.cfg.Configured() }

// Reviews returns the place's reviews, newest order as Google returns them.
func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if c.cache == nil {
		return c.fetchReviews(ctx)
	}
	return cache.GetOrSet(ctx, c.cache, "reviews:"+c.cfg.PlaceID,
		func(ctx context.Context) ([]Review, time.Duration, error) {
			reviews, err := c.fetchReviews(ctx)
			return reviews, c.cfg.CacheTTL, err
		})
}

// RatingCount returns userRatingCount from the Places API (New).
func (c *Client) RatingCount(ctx context.Context) (int, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	var body struct {
		Rating          float64 `json:"rating"`
		UserRatingCount int     `json:"userRatingCount"`
	}
	status, err := c.getPlace(ctx, ratingFieldMask, &body)
	if err != nil {
		return 0, err
	}
	if status/100 != 2 {
		return 0, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return body.UserRatingCount, nil
}

func (c *Client) fetchReviews(ctx context.Context) ([]Review, error) {
	var body placeV1
	status, err := c.getPlace(ctx, reviewsFieldMask, &body)
	if err != nil {
		return nil, err
	}
	if status/100 == 2 {
		return body.normalize(), nil
	}

	reviews, lerr := c.legacyReviews(ctx)
	if lerr != nil {
		return nil, fmt.Errorf("%w: primary status %d: %w", ErrUnavailable, status, lerr)
	}
	return reviews, nil
}

// getPlace decodes into dst only on 2xx. Non-2xx bodies are drained and the
// status returned without error.
func (c *Client) getPlace(ctx context.Context, fieldMask string, dst any) (int, error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v1/places/" + url.PathEscape(c.cfg.PlaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Join(ErrFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.cfg.APIKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	return c.do(req, dst)
}

func (c *Client) legacyReviews(ctx context.Context) ([]Review, error) {
	q := url.Values{}
	q.Set("place_id", c.cfg.PlaceID)
	q.Set("fields", "reviews,rating")
	q.Set("key", c.cfg.APIKey)
	endpoint := strings.TrimSuffix(c.cfg.LegacyBaseURL, "/") + "/maps/api/place/details/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	var body placeLegacy
	status, err := c.do(req, &body)
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("legacy status %d", status)
	}
	if body.Result == nil || body.Result.Reviews == nil {
		return nil, fmt.Errorf("legacy status %q: no reviews", body.Status)
	}
	return body.normalize(), nil
}

func (c *Client) do(req *http.Request, dst any) (int, error) {
	if c.throttle != nil {
		if err := c.throttle.Wait(req.Context()); err != nil {
			return 0, errors.Join(ErrFetch, err)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Join(ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		return resp.StatusCode, errors.Join(ErrFetch, err)
	}
	return resp.StatusCode, nil
}

func newReview(name, text string, rating int, ts, relative *string) Review {
	if strings.TrimSpace(name) == "" {
		name = defaultName
	}
	if rating == 0 {
		rating = defaultRating
	}
	return Review{
		Name:                    name,
		Text:                    sanitizer.StripControl(text),
		Rating:                  rating,
		Time:                    ts,
		RelativeTimeDescription: relative,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
