package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes lists the MIME types accepted for uploads. Question
// figures are always images.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// ValidateContentType rejects MIME types outside AllowedContentTypes.
// Parameters such as charset are ignored.
func (s *MinIOService) ValidateContentType(contentType string) error {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

// ValidateFileSize rejects empty files and files over the configured cap.
func (s *MinIOService) ValidateFileSize(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be positive")
	}
	if sizeBytes > s.maxFileSize {
		return fmt.Errorf("file size %d exceeds limit of %d bytes", sizeBytes, s.maxFileSize)
	}
	return nil
}
