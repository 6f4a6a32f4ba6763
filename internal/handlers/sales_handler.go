package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dokon-pos/internal/reports"

	"github.com/gin-gonic/gin"
)

// SalesHandler serves the sales history.
type SalesHandler struct {
	reports *reports.Service
}

func NewSalesHandler(svc *reports.Service) *SalesHandler {
	return &SalesHandler{reports: svc}
}

// --- GET /api/sales?from=2006-01-02&to=2006-01-02&payment=cash ---
func (h *SalesHandler) List(c *gin.Context) {
	var from, to *time.Time

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		// inclusive end of day
		t = t.AddDate(0, 0, 1)
		to = &t
	}

	sales, err := h.reports.SalesHistory(c.Request.Context(), from, to, c.Query("payment"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET /api/sales/:id ---
func (h *SalesHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, sale)
}
