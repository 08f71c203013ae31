// Package counter keeps the clinic's "happy patients" number.
//
// The value is one small JSON document, {"happyPatients":N,"updatedAt":...},
// seeded with a default until the first write. Three backends share the
// Store interface:
//
//   - FileStore writes the document to local disk (the default)
//   - RedisStore keeps it in a hash, for deployments with several replicas
//   - ObjectStore keeps it in an S3 bucket through pkg/storage
//
// Cached wraps any Store with a short-lived in-memory copy so the stats
// endpoint does not hit the backend on every page view. Writes through
// Cached refresh the copy.
package counter
