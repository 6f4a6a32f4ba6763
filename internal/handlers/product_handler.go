package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"dokon-pos/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler serves the catalog: product CRUD, barcode scans and
// image uploads.
type ProductHandler struct {
	catalog   *catalog.Service
	uploadDir string
	baseURL   string
}

func NewProductHandler(svc *catalog.Service, uploadDir, baseURL string) *ProductHandler {
	return &ProductHandler{catalog: svc, uploadDir: uploadDir, baseURL: baseURL}
}

// catalogStatus maps catalog service errors to HTTP codes.
func catalogStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrDuplicateCode),
		errors.Is(err, catalog.ErrDuplicateBarcode),
		errors.Is(err, catalog.ErrDuplicateCategory),
		errors.Is(err, catalog.ErrCategoryInUse):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// --- GET /api/products ---
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST /api/products ---
func (h *ProductHandler) Add(c *gin.Context) {
	var input catalog.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	input.ID = 0 // creates never carry an id

	product, err := h.catalog.SaveProduct(c.Request.Context(), input)
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// --- PUT /api/products/:id ---
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	var input catalog.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	input.ID = uint(id)

	product, err := h.catalog.SaveProduct(c.Request.Context(), input)
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE /api/products/:id ---
// The UI asks for confirmation; here the delete is unconditional. Sales
// keep snapshots, so history survives.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- GET /api/products/scan/:barcode ---
// The camera decoding happens on the client; this resolves whatever
// string it produced into a product for the cashier or the product form.
func (h *ProductHandler) Scan(c *gin.Context) {
	product, err := h.catalog.FindByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- POST /api/upload ---
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	switch filepath.Ext(file.Filename) {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     fmt.Sprintf("%s/uploads/%s", h.baseURL, filename),
	})
}
