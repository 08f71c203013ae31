package storage

import (
	"context"
	"io"
)

// Storage stores objects by key.
type Storage interface {
	// Put writes size bytes from r under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, size int64, opts ...Option) (*ObjectInfo, error)

	// Get opens the object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Head returns object metadata without the body.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Config holds S3 connection settings.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint is set for S3-compatible services such as MinIO.
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
}

// ObjectInfo is the metadata of a stored object.
type ObjectInfo struct {
	Key          string
	ContentType  string
	ETag         string
	CacheControl string
	Size         int64
}

// ACL is a canned access control setting.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

const DefaultRegion = "us-east-1"

// Option configures a Put.
type Option func(*putOptions)

type putOptions struct {
	contentType  string
	cacheControl string
	acl          ACL
}

// WithContentType sets the object's Content-Type. Default: application/octet-stream.
func WithContentType(ct string) Option {
	return func(o *putOptions) { o.contentType = ct }
}

// WithCacheControl sets the object's Cache-Control header.
func WithCacheControl(v string) Option {
	return func(o *putOptions) { o.cacheControl = v }
}

// WithACL overrides the private default.
func WithACL(acl ACL) Option {
	return func(o *putOptions) { o.acl = acl }
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
