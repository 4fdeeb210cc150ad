package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStorage(t.TempDir())

	path := "visits/abc/photos/photo.jpg"
	storagePath, publicURL, err := store.Upload(ctx, strings.NewReader("image-bytes"), path)
	require.NoError(t, err)
	assert.Equal(t, path, storagePath)
	assert.Equal(t, "/uploads/"+path, publicURL)

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.GetReader(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Delete(ctx, path))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageGetPublicURL(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	assert.Equal(t, "/uploads/visits/x/documents/laudo.pdf", store.GetPublicURL("visits/x/documents/laudo.pdf"))
}

func TestLocalStorageGetReaderMissing(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	_, err := store.GetReader(context.Background(), "missing.jpg")
	assert.Error(t, err)
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStorage(t.TempDir())

	for _, path := range []string{"../outside.txt", "visits/../../outside.txt", ""} {
		_, _, err := store.Upload(ctx, strings.NewReader("x"), path)
		assert.Error(t, err, path)

		_, err = store.GetReader(ctx, path)
		assert.Error(t, err, path)

		assert.Error(t, store.Delete(ctx, path), path)
	}
}

func TestLocalStorageDeletePrunesVisitDirs(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store := NewLocalStorage(base)

	path := "visits/abc/documents/laudo.pdf"
	_, _, err := store.Upload(ctx, strings.NewReader("pdf-bytes"), path)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))

	_, err = os.Stat(filepath.Join(base, "visits"))
	assert.True(t, os.IsNotExist(err))
}
