// Package media wraps the media-storage collaborator. Handlers never
// inspect raw file bytes; they hand a reader plus options to a Store and
// persist the returned durable URL.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// UploadOptions carries the metadata the collaborator needs: destination
// folder, accepted formats, a size ceiling, and an optional transformation
// hint applied server-side (e.g. thumbnail cropping).
type UploadOptions struct {
	Folder         string
	AllowedFormats []string
	MaxBytes       int64
	Transformation string
}

// Store is the interface consumed by upload handlers.
type Store interface {
	Upload(ctx context.Context, r io.Reader, filename string, opts UploadOptions) (url string, err error)
}

// CheckFormat validates a filename extension against the allowed set
// before any bytes are sent to the collaborator.
func CheckFormat(filename string, allowed []string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return fmt.Errorf("file %q has no extension", filename)
	}
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("format %q not allowed (want one of %s)", ext, strings.Join(allowed, ", "))
}
