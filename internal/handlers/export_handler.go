package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dokon-pos/internal/export"
	"dokon-pos/internal/reports"

	"github.com/gin-gonic/gin"
)

// ExportHandler produces downloadable artifacts: the sales workbook and
// printable PDF receipts.
type ExportHandler struct {
	reports  *reports.Service
	shopName string
}

func NewExportHandler(svc *reports.Service, shopName string) *ExportHandler {
	return &ExportHandler{reports: svc, shopName: shopName}
}

// --- GET /api/export/sales.xlsx?from=&to= ---
func (h *ExportHandler) SalesExcel(c *gin.Context) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = &t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			t = t.AddDate(0, 0, 1)
			to = &t
		}
	}

	sales, err := h.reports.SalesHistory(c.Request.Context(), from, to, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	workbook, err := export.SalesWorkbook(sales)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream workbook"})
		return
	}
}

// --- GET /api/sales/:id/receipt.pdf ---
func (h *ExportHandler) ReceiptPDF(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	sale, err := h.reports.GetSale(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	pdf, err := export.ReceiptPDF(c.Request.Context(), sale, h.shopName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%04d.pdf", sale.ReceiptNo))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// --- GET /api/sales/:id/receipt ---
// Plain HTML variant for shops that print straight from the browser.
func (h *ExportHandler) ReceiptHTML(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	sale, err := h.reports.GetSale(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	html, err := export.ReceiptHTML(sale, h.shopName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render receipt"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
