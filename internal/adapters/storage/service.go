// Package storage provides a domain-agnostic interface for S3-compatible
// object storage. Question figures are the only uploads today; the interface
// stays generic so other modules can reuse it.
package storage

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL for one upload or download, together
// with the object key it operates on.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service is the object storage surface the modules consume.
type Service interface {
	// GenerateUploadURL presigns an upload. The folder parameter is the key
	// prefix (e.g. a question ID).
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// GenerateDownloadURL presigns a download of an existing object.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, bucket, fileKey string) error

	// EnsureBucketExists creates the bucket when missing.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// ValidateContentType rejects MIME types outside the allow list.
	ValidateContentType(contentType string) error

	// ValidateFileSize rejects empty or oversized uploads.
	ValidateFileSize(sizeBytes int64) error
}

// Config is the subset of app configuration storage needs.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
