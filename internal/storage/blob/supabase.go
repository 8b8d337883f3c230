package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps order files in a Supabase storage bucket.
type SupabaseStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewSupabaseStore builds a store for bucket using the service role key.
func NewSupabaseStore(supabaseURL, serviceKey, bucket string, logger *slog.Logger) *SupabaseStore {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStore{
		client:  storage.NewClient(baseURL+"/storage/v1", serviceKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Upload stores body under path. Existing objects are never overwritten.
func (s *SupabaseStore) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, body, storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	s.logger.Debug("file uploaded", slog.String("path", path), slog.String("content_type", contentType))
	return nil
}

// Remove deletes paths in a single request. Storage answers with one entry
// per object it deleted, so paths that were already gone are not counted.
func (s *SupabaseStore) Remove(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	removed, err := s.client.RemoveFile(s.bucket, paths)
	if err != nil {
		return 0, fmt.Errorf("remove %d files: %w", len(paths), err)
	}
	if len(removed) < len(paths) {
		s.logger.Info("some files were already gone",
			slog.Int("requested", len(paths)), slog.Int("removed", len(removed)))
	}
	s.logger.Debug("files removed", slog.Int("count", len(removed)))
	return len(removed), nil
}

// PublicURL returns the public object URL for path.
func (s *SupabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}
