// Package id generates identifiers for requests and outbound messages and
// carries the request id through a context.
package id

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewULID returns a 26-character, time-sortable ULID.
// Request ids use it so log lines sort in arrival order.
func NewULID() string {
	return ulid.Make().String()
}

// NewReference returns a random UUID for tagging outbound emails.
// Mail clients group messages that share a reference, so each send gets a fresh one.
func NewReference() string {
	return uuid.NewString()
}
