// Package storage keeps uploaded files in an afero filesystem: the OS disk
// in production, memory in tests.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a blob does not exist or its name is invalid.
var ErrNotFound = errors.New("blob not found")

// BlobStore stores flat, named blobs.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
}

// FSStore is a BlobStore backed by an afero filesystem.
type FSStore struct {
	fs afero.Fs
}

// NewFSStore wraps fs.
func NewFSStore(fs afero.Fs) *FSStore {
	return &FSStore{fs: fs}
}

// NewDiskStore stores blobs in dir, creating it if needed.
func NewDiskStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return NewFSStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewMemoryStore stores blobs in memory.
func NewMemoryStore() *FSStore {
	return NewFSStore(afero.NewMemMapFs())
}

// Put writes r under name. A partially written blob is removed on failure.
func (s *FSStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if !validName(name) {
		return 0, fmt.Errorf("invalid blob name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := s.fs.OpenFile("/"+name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove("/" + name)
		return 0, fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	return n, nil
}

// Open returns a reader over the named blob.
func (s *FSStore) Open(name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrNotFound
	}
	f, err := s.fs.Open("/" + name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", name, err)
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// Delete removes the named blob. Deleting a missing blob is not an error.
func (s *FSStore) Delete(name string) error {
	if !validName(name) {
		return ErrNotFound
	}
	if err := s.fs.Remove("/" + name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}
	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && path.Base(name) == name
}
