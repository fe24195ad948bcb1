package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoragePath(t *testing.T) {
	tests := []struct {
		name     string
		fileID   string
		filename string
		want     string
	}{
		{"plain", "abcdef", "judgment.pdf", "ab/abcdef_judgment.pdf"},
		{"spaces", "abcdef", "Final Judgment.pdf", "ab/abcdef_Final_Judgment.pdf"},
		{"directory stripped", "abcdef", "../../etc/passwd", "ab/abcdef_passwd"},
		{"short id", "x", "a.txt", "x/x_a.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateStoragePath(tt.fileID, tt.filename))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.PDF"))
	assert.Equal(t, "image/jpeg", ContentType("photo.jpeg"))
	assert.Equal(t, "application/octet-stream", ContentType("archive"))
}

func exerciseBackend(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	path, err := s.Upload(ctx, "file-123", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "deleting twice is not an error")

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorage(t *testing.T) {
	exerciseBackend(t, NewMemoryStorage())
}

func TestLocalStorage(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, s)
}

// fakeS3 serves path-style object requests for one bucket from memory
type fakeS3 struct {
	bucket string

	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeS3(bucket string) *fakeS3 {
	return &fakeS3{bucket: bucket, objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key, ok := strings.CutPrefix(r.URL.Path, "/"+f.bucket+"/")
	if !ok {
		http.Error(w, "unknown bucket", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.objects[key] = body
		f.contentTypes[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, found := f.objects[key]
		if !found {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", f.contentTypes[key])
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Storage(t *testing.T) {
	fake := newFakeS3("case-files")
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s, err := NewStorage(StorageConfig{
		Type:         StorageTypeS3,
		S3Bucket:     "case-files",
		S3Region:     "us-east-1",
		S3Endpoint:   srv.URL,
		AWSAccessKey: "test-access",
		AWSSecretKey: "test-secret",
	})
	require.NoError(t, err)
	require.IsType(t, &S3Storage{}, s)

	exerciseBackend(t, s)

	path, err := s.Upload(context.Background(), "file-9", "Default Judgment.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "fi/file-9_Default_Judgment.pdf", path)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []byte("%PDF"), fake.objects[path])
	assert.Equal(t, "application/pdf", fake.contentTypes[path])
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = NewStorage(StorageConfig{Type: StorageTypeLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)

	_, err = NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
