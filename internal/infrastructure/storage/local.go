// Package storage provides file storage for uploaded product images.
package storage

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrEmptyFile       = errors.New("empty file")
	ErrTooLarge        = errors.New("file too large")
)

// extByMIME doubles as the whitelist of accepted image types
var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// StoredImage describes a successfully stored upload
type StoredImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// LocalImageStore writes uploaded images to a local directory served under
// /uploads/. Filenames are random so an upload can never clobber another.
type LocalImageStore struct {
	dir      string
	maxBytes int64
}

// NewLocalImageStore creates the upload directory if needed and returns a
// store writing into it.
func NewLocalImageStore(dir string, maxBytes int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory images are stored in
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size ceiling
func (s *LocalImageStore) MaxBytes() int64 {
	return s.maxBytes
}

// SaveImage validates and stores image data, returning the generated
// filename and its public URL.
func (s *LocalImageStore) SaveImage(contentType string, data []byte) (*StoredImage, error) {
	// Content-Type may carry parameters, e.g. "image/jpeg; charset=binary".
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, ErrUnsupportedType
	}
	ext, ok := extByMIME[strings.ToLower(mediaType)]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	return &StoredImage{
		Filename: filename,
		URL:      "/uploads/" + filename,
	}, nil
}
