package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage keeps blobs in process memory. Contents are lost on restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Upload buffers the blob in memory
func (s *MemoryStorage) Upload(ctx context.Context, fileID, filename string, data io.Reader) (string, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	storagePath := generateStoragePath(fileID, filename)
	s.mu.Lock()
	s.blobs[storagePath] = buf
	s.mu.Unlock()
	return storagePath, nil
}

// Download returns a reader over the stored bytes
func (s *MemoryStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	s.mu.RLock()
	buf, ok := s.blobs[storagePath]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", storagePath, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}

// Delete drops the blob
func (s *MemoryStorage) Delete(ctx context.Context, storagePath string) error {
	s.mu.Lock()
	delete(s.blobs, storagePath)
	s.mu.Unlock()
	return nil
}

// Len reports how many blobs are held
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
