package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/metrics"
	"inventory_backend/internal/services"
)

const categoriesPath = "/categories"

// CategoryHandler holds the category service.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

// GetCategories handles the paginated category list.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	search, page := listQuery(c)

	resp, err := h.categoryService.ListCategories(c.Request.Context(), userID, search, page)
	if err != nil {
		respondServiceError(c, err, "Category", "fetch categories")
		return
	}
	c.JSON(http.StatusOK, struct {
		*services.CategoryListResponse
		Flash string `json:"flash,omitempty"`
	}{resp, popFlash(c)})
}

// SearchCategories returns up to ten {id, name} pairs as a bare JSON array.
func (h *CategoryHandler) SearchCategories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	options, err := h.categoryService.QuickSearchCategories(c.Request.Context(), userID, c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Category", "search categories")
		return
	}
	c.JSON(http.StatusOK, options)
}

// CreateCategory handles the creation of a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	metrics.RecordOperation("category", "create", err)
	if err != nil {
		respondServiceError(c, err, "Category", "create category")
		return
	}
	respondMutation(c, http.StatusCreated, "Category created successfully.", categoriesPath, category)
}

// UpdateCategory handles renaming a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "category")
	if !ok {
		return
	}
	var req services.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, categoryID, req)
	metrics.RecordOperation("category", "update", err)
	if err != nil {
		respondServiceError(c, err, "Category", "update category")
		return
	}
	respondMutation(c, http.StatusOK, "Category updated successfully.", categoriesPath, category)
}

// DeleteCategory handles deleting a category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "category")
	if !ok {
		return
	}

	err := h.categoryService.DeleteCategory(c.Request.Context(), userID, categoryID)
	metrics.RecordOperation("category", "delete", err)
	if err != nil {
		respondServiceError(c, err, "Category", "delete category")
		return
	}
	respondMutation(c, http.StatusOK, "Category deleted successfully.", categoriesPath, nil)
}
