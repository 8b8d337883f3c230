package repository

import (
	"context"
	"io"
)

// BlobStore keeps uploaded order files.
type BlobStore interface {
	Upload(ctx context.Context, path string, body io.Reader, contentType string) error
	// Remove deletes every path in a single call and returns how many objects
	// were actually removed. Missing paths are not an error.
	Remove(ctx context.Context, paths []string) (int, error)
	PublicURL(path string) string
}
