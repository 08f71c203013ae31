// Package storage is a small S3-compatible object store for JSON documents.
//
// The clinic server uses it to keep the patient counter in a bucket when the
// service runs on hosts without a persistent disk (COUNTER_BACKEND=s3).
// Any S3 API works: AWS, MinIO, R2, Spaces.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "clinic",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//	_, err = store.Put(ctx, "stats/counter.json", bytes.NewReader(doc), int64(len(doc)),
//		storage.WithContentType("application/json"))
//
// Errors are normalised to the sentinels in errors.go, so callers check
// errors.Is(err, storage.ErrNotFound) instead of inspecting AWS types.
package storage
