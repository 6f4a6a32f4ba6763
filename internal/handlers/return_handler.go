package handlers

import (
	"errors"
	"net/http"

	"dokon-pos/internal/returns"

	"github.com/gin-gonic/gin"
)

// ReturnHandler serves the returns flow.
type ReturnHandler struct {
	returns *returns.Service
}

func NewReturnHandler(svc *returns.Service) *ReturnHandler {
	return &ReturnHandler{returns: svc}
}

func returnStatus(err error) int {
	switch {
	case errors.Is(err, returns.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, returns.ErrNoLinesSelected),
		errors.Is(err, returns.ErrExceedsSold):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// --- GET /api/returns ---
func (h *ReturnHandler) List(c *gin.Context) {
	list, err := h.returns.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch returns"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ReturnRequest selects the sale and the lines to give back.
type ReturnRequest struct {
	SaleID uint                `json:"sale_id" binding:"required"`
	Items  []returns.LineInput `json:"items"`
	Reason string              `json:"reason"`
}

// --- POST /api/returns ---
func (h *ReturnHandler) Process(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ret, err := h.returns.Process(c.Request.Context(), req.SaleID, req.Items, req.Reason)
	if err != nil {
		c.JSON(returnStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ret)
}
