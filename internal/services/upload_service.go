package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"mime"
	"strconv"
	"strings"
	"time"

	"boutique/internal/storage"
)

// MaxUploadSize is the largest accepted file, per file.
const MaxUploadSize = 5 << 20

// MaxUploadFiles bounds a multi-file upload.
const MaxUploadFiles = 5

// UploadPathPrefix is where stored files are served from.
const UploadPathPrefix = "/uploads/"

// imageExtensions maps each accepted media type to the extension stored
// files get, so a file is always served as the type it was checked as.
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/avif":    ".avif",
	"image/bmp":     ".bmp",
	"image/svg+xml": ".svg",
}

// UploadFile describes one received file.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// StoredFile is the result of a stored upload.
type StoredFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// UploadService checks and stores product images.
type UploadService struct {
	store   storage.BlobStore
	baseURL string
	now     func() time.Time
}

// NewUploadService creates a new UploadService. Locators are built from
// baseURL; when it is empty the caller-supplied base is used.
func NewUploadService(store storage.BlobStore, baseURL string) *UploadService {
	return &UploadService{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Store validates every file first and then stores them all. requestBase is
// used for locators when no public base URL is configured.
func (s *UploadService) Store(ctx context.Context, requestBase string, files []UploadFile) ([]StoredFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no image file provided", ErrValidation)
	}
	if len(files) > MaxUploadFiles {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrValidation, MaxUploadFiles)
	}
	exts := make([]string, len(files))
	for i, f := range files {
		ext, err := checkUpload(f)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}

	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(requestBase, "/")
	}

	stored := make([]StoredFile, 0, len(files))
	for i, f := range files {
		name := s.blobName(exts[i])
		if err := s.put(ctx, name, f); err != nil {
			s.discard(stored)
			return nil, err
		}
		stored = append(stored, StoredFile{
			Filename: name,
			URL:      base + UploadPathPrefix + name,
		})
	}
	return stored, nil
}

// Open returns the stored blob called name.
func (s *UploadService) Open(name string) (io.ReadCloser, error) {
	rc, err := s.store.Open(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("file %s: %w", name, ErrNotFound)
	}
	return rc, err
}

func (s *UploadService) put(ctx context.Context, name string, f UploadFile) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read upload %s: %w", f.Filename, err)
	}
	defer rc.Close()

	// Read one byte past the limit to catch a size that lied.
	n, err := s.store.Put(ctx, name, io.LimitReader(rc, MaxUploadSize+1))
	if err != nil {
		return err
	}
	if n > MaxUploadSize {
		_ = s.store.Delete(name)
		return fmt.Errorf("%w: %s exceeds %d MB", ErrFileTooLarge, f.Filename, MaxUploadSize>>20)
	}
	return nil
}

// discard removes blobs stored earlier in a request that failed.
func (s *UploadService) discard(stored []StoredFile) {
	for _, f := range stored {
		_ = s.store.Delete(f.Filename)
	}
}

func (s *UploadService) blobName(ext string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1e9))
	if err != nil {
		n = big.NewInt(s.now().UnixNano() % 1e9)
	}
	return "product-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + n.String() + ext
}

// checkUpload validates f and returns the extension it is stored under.
func checkUpload(f UploadFile) (string, error) {
	if f.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: %s exceeds %d MB", ErrFileTooLarge, f.Filename, MaxUploadSize>>20)
	}
	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	ext, ok := imageExtensions[mediaType]
	if err != nil || !ok {
		return "", fmt.Errorf("%w: only image files are allowed", ErrValidation)
	}
	return ext, nil
}
