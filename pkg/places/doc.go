// Package places reads a business's reviews and rating count from Google Places.
//
// Reviews asks the Places API (New) first. When it answers with a non-2xx
// status the legacy Place Details endpoint is tried before giving up with
// ErrUnavailable. Both shapes are normalised into Review. An optional cache
// keeps successful lists; failures are never cached.
package places
