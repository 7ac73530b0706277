package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akau-shop/backend/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadRouter(t *testing.T, maxBytes int64) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalImageStore(dir, maxBytes)
	require.NoError(t, err)

	engine := gin.New()
	engine.POST("/admin/uploads", NewUploadHandler(store).UploadImage)
	return engine, dir
}

func multipartBody(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.bin"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_Success(t *testing.T) {
	engine, dir := setupUploadRouter(t, 1<<20)

	body, contentType := multipartBody(t, "image/png", []byte("fake png bytes"))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Filename string `json:"filename"`
			URL      string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasSuffix(resp.Data.Filename, ".png"))
	assert.Equal(t, "/uploads/"+resp.Data.Filename, resp.Data.URL)

	saved, err := os.ReadFile(filepath.Join(dir, resp.Data.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), saved)
}

func TestUploadHandler_UnsupportedType(t *testing.T) {
	engine, _ := setupUploadRouter(t, 1<<20)

	body, contentType := multipartBody(t, "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_MEDIA_TYPE")
}

func TestUploadHandler_EmptyFile(t *testing.T) {
	engine, _ := setupUploadRouter(t, 1<<20)

	body, contentType := multipartBody(t, "image/jpeg", nil)
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_TooLarge(t *testing.T) {
	engine, _ := setupUploadRouter(t, 16)

	body, contentType := multipartBody(t, "image/jpeg", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	engine, _ := setupUploadRouter(t, 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
