package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/akau-shop/backend/internal/infrastructure/storage"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles product image uploads
type UploadHandler struct {
	BaseHandler
	store *storage.LocalImageStore
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store *storage.LocalImageStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadImage accepts a multipart "file" field and stores it under a
// generated name.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing multipart field: file")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	// Read one byte past the cap so oversized uploads are detected without
	// buffering the whole body.
	data, err := io.ReadAll(io.LimitReader(src, h.store.MaxBytes()+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	stored, err := h.store.SaveImage(file.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			h.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
				"Unsupported image type: allowed types are jpeg, png, webp and gif")
		case errors.Is(err, storage.ErrEmptyFile):
			h.BadRequest(c, "Uploaded file is empty")
		case errors.Is(err, storage.ErrTooLarge):
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadLarge,
				"Uploaded file exceeds the maximum allowed size")
		default:
			h.InternalError(c, "Failed to store uploaded file")
		}
		return
	}

	h.Created(c, stored)
}
