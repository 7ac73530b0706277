package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, maxBytes int64) *LocalImageStore {
	t.Helper()
	store, err := NewLocalImageStore(t.TempDir(), maxBytes)
	require.NoError(t, err)
	return store
}

func TestSaveImage(t *testing.T) {
	t.Run("stores jpeg with generated name", func(t *testing.T) {
		store := newStore(t, 1024)

		img, err := store.SaveImage("image/jpeg", []byte("fake-jpeg-bytes"))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(img.Filename, ".jpg"))
		assert.Equal(t, "/uploads/"+img.Filename, img.URL)

		data, err := os.ReadFile(filepath.Join(store.Dir(), img.Filename))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-jpeg-bytes"), data)
	})

	t.Run("maps each accepted type to its extension", func(t *testing.T) {
		store := newStore(t, 1024)
		for contentType, ext := range map[string]string{
			"image/png":  ".png",
			"image/webp": ".webp",
			"image/gif":  ".gif",
		} {
			img, err := store.SaveImage(contentType, []byte("x"))
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(img.Filename, ext), "type %s", contentType)
		}
	})

	t.Run("content type check is case insensitive", func(t *testing.T) {
		store := newStore(t, 1024)
		_, err := store.SaveImage("IMAGE/PNG", []byte("x"))
		assert.NoError(t, err)
	})

	t.Run("accepts content type with parameters", func(t *testing.T) {
		store := newStore(t, 1024)
		img, err := store.SaveImage("image/jpeg; charset=binary", []byte("x"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(img.Filename, ".jpg"))
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		store := newStore(t, 1024)
		_, err := store.SaveImage("application/pdf", []byte("x"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		store := newStore(t, 1024)
		_, err := store.SaveImage("image/png", nil)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		store := newStore(t, 4)
		_, err := store.SaveImage("image/png", []byte("12345"))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("two uploads never collide", func(t *testing.T) {
		store := newStore(t, 1024)

		first, err := store.SaveImage("image/png", []byte("a"))
		require.NoError(t, err)
		second, err := store.SaveImage("image/png", []byte("b"))
		require.NoError(t, err)

		assert.NotEqual(t, first.Filename, second.Filename)
	})
}
