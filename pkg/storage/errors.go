package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig  = errors.New("storage: invalid configuration")
	ErrInvalidKey     = errors.New("storage: invalid key")
	ErrNotFound       = errors.New("storage: object not found")
	ErrAccessDenied   = errors.New("storage: access denied")
	ErrUploadFailed   = errors.New("storage: upload failed")
	ErrDownloadFailed = errors.New("storage: download failed")
	ErrDeleteFailed   = errors.New("storage: delete failed")
)

// wrapS3Error maps SDK errors to package sentinels. The SDK error is
// formatted with %v so callers match on sentinels only.
func wrapS3Error(err, fallback error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
