package services_test

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"

	"boutique/internal/services"
	"boutique/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blobNamePattern = regexp.MustCompile(`^product-\d+-\d+\.jpg$`)

func fileOf(name, contentType string, data []byte) services.UploadFile {
	return services.UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func TestUploadService_StoreAndOpen(t *testing.T) {
	service := services.NewUploadService(storage.NewMemoryStore(), "")
	payload := bytes.Repeat([]byte{0xff}, 2<<20)

	stored, err := service.Store(context.Background(), "http://shop.local", []services.UploadFile{
		fileOf("Photo.JPG", "image/jpeg", payload),
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Regexp(t, blobNamePattern, stored[0].Filename)
	assert.Equal(t, "http://shop.local/uploads/"+stored[0].Filename, stored[0].URL)

	rc, err := service.Open(stored[0].Filename)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestUploadService_PublicBaseURL(t *testing.T) {
	service := services.NewUploadService(storage.NewMemoryStore(), "https://cdn.example.com/")

	stored, err := service.Store(context.Background(), "http://ignored", []services.UploadFile{
		fileOf("a.png", "image/png", []byte("png")),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored[0].URL, "https://cdn.example.com/uploads/product-"))
}

func TestUploadService_Rejects(t *testing.T) {
	big := make([]byte, 6<<20)
	tests := []struct {
		name  string
		files []services.UploadFile
		err   error
	}{
		{"no files", nil, services.ErrValidation},
		{"too large", []services.UploadFile{fileOf("big.jpg", "image/jpeg", big)}, services.ErrFileTooLarge},
		{"not an image", []services.UploadFile{fileOf("notes.txt", "text/plain", []byte("hi"))}, services.ErrValidation},
		{"no content type", []services.UploadFile{fileOf("x.jpg", "", []byte("hi"))}, services.ErrValidation},
		{"too many", []services.UploadFile{
			fileOf("1.jpg", "image/jpeg", []byte("1")),
			fileOf("2.jpg", "image/jpeg", []byte("2")),
			fileOf("3.jpg", "image/jpeg", []byte("3")),
			fileOf("4.jpg", "image/jpeg", []byte("4")),
			fileOf("5.jpg", "image/jpeg", []byte("5")),
			fileOf("6.jpg", "image/jpeg", []byte("6")),
		}, services.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := services.NewUploadService(storage.NewMemoryStore(), "")
			_, err := service.Store(context.Background(), "http://shop.local", tt.files)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUploadService_TooLargeIsValidationError(t *testing.T) {
	assert.ErrorIs(t, services.ErrFileTooLarge, services.ErrValidation)
}

func TestUploadService_UnderstatedSize(t *testing.T) {
	store := storage.NewMemoryStore()
	service := services.NewUploadService(store, "")

	f := fileOf("sneaky.jpg", "image/jpeg", make([]byte, 6<<20))
	f.Size = 1024
	_, err := service.Store(context.Background(), "http://shop.local", []services.UploadFile{f})
	assert.ErrorIs(t, err, services.ErrFileTooLarge)
}

// recordingStore remembers every blob name written through it.
type recordingStore struct {
	*storage.FSStore
	mu    sync.Mutex
	names []string
}

func (s *recordingStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	s.mu.Lock()
	s.names = append(s.names, name)
	s.mu.Unlock()
	return s.FSStore.Put(ctx, name, r)
}

func TestUploadService_FailedBatchLeavesNothing(t *testing.T) {
	store := &recordingStore{FSStore: storage.NewMemoryStore()}
	service := services.NewUploadService(store, "")

	sneaky := fileOf("c.jpg", "image/jpeg", make([]byte, 6<<20))
	sneaky.Size = 1024
	_, err := service.Store(context.Background(), "http://shop.local", []services.UploadFile{
		fileOf("a.jpg", "image/jpeg", []byte("a")),
		fileOf("b.png", "image/png", []byte("b")),
		sneaky,
	})
	require.ErrorIs(t, err, services.ErrFileTooLarge)

	require.Len(t, store.names, 3)
	for _, name := range store.names {
		_, err := store.Open(name)
		assert.ErrorIs(t, err, storage.ErrNotFound, name)
	}
}

func TestUploadService_ExtensionFollowsContentType(t *testing.T) {
	service := services.NewUploadService(storage.NewMemoryStore(), "")

	stored, err := service.Store(context.Background(), "http://shop.local", []services.UploadFile{
		fileOf("page.html", "image/png", []byte("<script></script>")),
		fileOf("noext", "image/webp", []byte("webp")),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^product-\d+-\d+\.png$`, stored[0].Filename)
	assert.Regexp(t, `^product-\d+-\d+\.webp$`, stored[1].Filename)
}

func TestUploadService_OpenMissing(t *testing.T) {
	service := services.NewUploadService(storage.NewMemoryStore(), "")

	_, err := service.Open("product-1-1.jpg")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = service.Open("../etc/passwd")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
