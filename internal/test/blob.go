package test

import (
	"context"
	"io"
	"sync"
)

// BlobStoreStub keeps uploaded files in memory.
type BlobStoreStub struct {
	mu    sync.Mutex
	files map[string][]byte

	UploadErr error
	RemoveErr error

	RemoveCalls [][]string
}

// NewBlobStoreStub constructs an empty store.
func NewBlobStoreStub() *BlobStoreStub {
	return &BlobStoreStub{files: make(map[string][]byte)}
}

// Upload stores body under path.
func (s *BlobStoreStub) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[path] = data
	return nil
}

// Put stores data under path directly.
func (s *BlobStoreStub) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[path] = data
}

// Remove deletes paths and counts the ones that existed.
func (s *BlobStoreStub) Remove(ctx context.Context, paths []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RemoveCalls = append(s.RemoveCalls, append([]string(nil), paths...))
	if s.RemoveErr != nil {
		return 0, s.RemoveErr
	}
	removed := 0
	for _, p := range paths {
		if _, ok := s.files[p]; ok {
			delete(s.files, p)
			removed++
		}
	}
	return removed, nil
}

// PublicURL returns a fake public URL.
func (s *BlobStoreStub) PublicURL(path string) string {
	return "https://files.test/" + path
}

// Has reports whether path is stored.
func (s *BlobStoreStub) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok
}

// Len returns the number of stored files.
func (s *BlobStoreStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
