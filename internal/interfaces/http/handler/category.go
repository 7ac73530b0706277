package handler

import (
	"net/http"

	appcatalog "github.com/akau-shop/backend/internal/application/catalog"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categories *appcatalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListActive returns the active categories for the storefront
func (h *CategoryHandler) ListActive(c *gin.Context) {
	result, err := h.categories.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns all categories, active or not
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create adds a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update modifies an existing category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
