package storage

import (
	"context"
	"io"
)

// Driver is the interface for the backends that hold visit photos and
// documents.
type Driver interface {
	// Upload stores a file. Returns the storage path and the public URL.
	Upload(ctx context.Context, file io.Reader, path string) (storagePath string, publicURL string, err error)

	// Delete removes a file from storage.
	Delete(ctx context.Context, path string) error

	// GetPublicURL returns the public URL for a file.
	// For local storage this is a relative path; for S3/R2 a full URL.
	GetPublicURL(path string) string

	// Exists checks if a file exists in storage.
	Exists(ctx context.Context, path string) (bool, error)

	// GetReader returns a reader for the file, used when generating photo
	// thumbnails.
	GetReader(ctx context.Context, path string) (io.ReadCloser, error)
}

// Config holds the storage configuration.
type Config struct {
	Driver string // local, s3, r2

	// Local storage
	UploadsPath string

	// AWS S3
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string

	// Cloudflare R2
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2AccountID       string
	R2Bucket          string
	R2PublicURL       string
}
