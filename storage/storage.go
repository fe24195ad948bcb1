package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a storage path holds no blob
var ErrNotFound = errors.New("blob not found")

// Storage interface for document blob operations
type Storage interface {
	// Upload stores a blob and returns the storage path
	Upload(ctx context.Context, fileID, filename string, data io.Reader) (string, error)

	// Download retrieves a blob by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a blob by storage path. Missing blobs are not an error.
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeMemory StorageType = "memory"
	StorageTypeLocal  StorageType = "local"
	StorageTypeS3     StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType `koanf:"type"`
	LocalPath    string      `koanf:"local_path"` // For local storage
	S3Bucket     string      `koanf:"s3_bucket"`
	S3Region     string      `koanf:"s3_region"`
	S3Endpoint   string      `koanf:"s3_endpoint"` // S3-compatible stores such as MinIO
	AWSAccessKey string      `koanf:"aws_access_key"`
	AWSSecretKey string      `koanf:"aws_secret_key"`
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeMemory, "":
		return NewMemoryStorage(), nil
	case StorageTypeLocal:
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/files"
		}
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("s3 bucket is required for S3 storage")
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// generateStoragePath builds a collision-free path for a blob
func generateStoragePath(fileID, filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	baseName := strings.TrimSuffix(name, ext)
	baseName = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "..", "_").Replace(baseName)

	prefix := fileID
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s/%s_%s%s", prefix, fileID, baseName, ext)
}

// ContentType determines content type from filename
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
