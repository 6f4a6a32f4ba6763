package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dokon-pos/internal/reports"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the read-only analytics views. Everything here is
// an aggregation over committed sales; "no data" is an empty payload,
// never an error.
type ReportHandler struct {
	reports *reports.Service
}

func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{reports: svc}
}

// windowStart turns a ?days=N query into a cutoff time. Zero or missing
// means all time.
func windowStart(c *gin.Context) time.Time {
	days, _ := strconv.Atoi(c.Query("days"))
	if days <= 0 {
		return time.Time{}
	}
	return time.Now().AddDate(0, 0, -days)
}

// --- GET /api/reports ---
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET /api/reports/top-products?days=30&limit=5 ---
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	top, err := h.reports.TopProducts(c.Request.Context(), windowStart(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top products"})
		return
	}
	c.JSON(http.StatusOK, top)
}

// --- GET /api/reports/categories?days=30 ---
func (h *ReportHandler) RevenueByCategory(c *gin.Context) {
	rows, err := h.reports.RevenueByCategory(c.Request.Context(), windowStart(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category revenue"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// --- GET /api/reports/daily?days=30 ---
func (h *ReportHandler) DailySeries(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	series, err := h.reports.DailySeries(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily series"})
		return
	}
	c.JSON(http.StatusOK, series)
}

// --- GET /api/reports/valuation ---
func (h *ReportHandler) StockValuation(c *gin.Context) {
	valuation, err := h.reports.StockValuation(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, valuation)
}
