package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutOpen(t *testing.T) {
	store := NewMemoryStore()
	payload := []byte("not really a png")

	n, err := store.Put(context.Background(), "product-1.png", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), n)

	rc, err := store.Open("product-1.png")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFSStore_RejectsOverwriteAndTraversal(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Put(ctx, "a.jpg", bytes.NewReader([]byte("1")))
	require.NoError(t, err)
	_, err = store.Put(ctx, "a.jpg", bytes.NewReader([]byte("2")))
	assert.Error(t, err)

	_, err = store.Put(ctx, "../escape.jpg", bytes.NewReader([]byte("x")))
	assert.Error(t, err)

	_, err = store.Open("../a.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Open("missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir + "/uploads")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "x.gif", bytes.NewReader([]byte("GIF89a")))
	require.NoError(t, err)

	rc, err := store.Open("x.gif")
	require.NoError(t, err)
	rc.Close()
}

func TestFSStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Put(context.Background(), "gone.webp", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Delete("gone.webp"))
	require.NoError(t, store.Delete("gone.webp"))
	_, err = store.Open("gone.webp")
	assert.ErrorIs(t, err, ErrNotFound)
}
