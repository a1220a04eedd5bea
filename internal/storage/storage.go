package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/BerylCAtieno/opticours-api/internal/config"
)

// Storage keeps the raw bytes of uploaded course files.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var ErrObjectNotFound = errors.New("object not found")

// New builds the backend selected by cfg.StorageBackend.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Storage(cfg)
	case "memory", "":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// ObjectKey is the storage key for a file's bytes. Directory components of
// the client-supplied name are dropped.
func ObjectKey(fileID, filename string) string {
	name := path.Base("/" + filename)
	if name == "/" || name == "." {
		name = "upload"
	}
	return fmt.Sprintf("files/%s/%s", fileID, name)
}

type memoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStorage() Storage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = buf
	s.mu.Unlock()
	return nil
}

func (s *memoryStorage) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return data, nil
}

// Delete is idempotent, matching S3 RemoveObject semantics.
func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}
