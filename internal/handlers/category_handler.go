package handlers

import (
	"net/http"

	"dokon-pos/internal/catalog"

	"github.com/gin-gonic/gin"
)

// CategoryHandler manages the product departments.
type CategoryHandler struct {
	catalog *catalog.Service
}

func NewCategoryHandler(svc *catalog.Service) *CategoryHandler {
	return &CategoryHandler{catalog: svc}
}

// --- GET /api/categories ---
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- POST /api/categories ---
func (h *CategoryHandler) Add(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	category, err := h.catalog.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

type renameRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// --- PUT /api/categories/:name ---
func (h *CategoryHandler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New name is required"})
		return
	}

	if err := h.catalog.RenameCategory(c.Request.Context(), c.Param("name"), req.NewName); err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category renamed successfully"})
}

// --- DELETE /api/categories/:name ---
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("name")); err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
