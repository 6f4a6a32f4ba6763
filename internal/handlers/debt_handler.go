package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dokon-pos/internal/debts"

	"github.com/gin-gonic/gin"
)

// DebtHandler serves the deferred-payment view.
type DebtHandler struct {
	debts *debts.Service
}

func NewDebtHandler(svc *debts.Service) *DebtHandler {
	return &DebtHandler{debts: svc}
}

func debtStatus(err error) int {
	switch {
	case errors.Is(err, debts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, debts.ErrNotDebt):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// --- GET /api/debts?q=customer ---
func (h *DebtHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.debts.List(ctx, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debts"})
		return
	}

	total, err := h.debts.TotalOutstanding(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum debts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"debts": list, "total_outstanding": total})
}

// --- POST /api/debts/:id/pay ---
func (h *DebtHandler) Settle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	sale, err := h.debts.Settle(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(debtStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Debt settled", "sale": sale})
}

type debtUpdateRequest struct {
	Customer string `json:"customer" binding:"required"`
	Note     string `json:"note"`
}

// --- PUT /api/debts/:id ---
// Only customer and note are editable; the committed amounts are part of
// the ledger and stay frozen.
func (h *DebtHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	var req debtUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		return
	}

	sale, err := h.debts.UpdateDetails(c.Request.Context(), uint(id), req.Customer, req.Note)
	if err != nil {
		c.JSON(debtStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Debt updated", "sale": sale})
}
