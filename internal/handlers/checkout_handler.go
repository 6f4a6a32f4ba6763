package handlers

import (
	"errors"
	"net/http"

	"dokon-pos/internal/catalog"
	"dokon-pos/internal/checkout"
	"dokon-pos/internal/notify"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler turns a submitted cart into a committed sale.
type CheckoutHandler struct {
	catalog  *catalog.Service
	checkout *checkout.Service
	telegram *notify.Telegram
}

func NewCheckoutHandler(catalogSvc *catalog.Service, checkoutSvc *checkout.Service, telegram *notify.Telegram) *CheckoutHandler {
	return &CheckoutHandler{catalog: catalogSvc, checkout: checkoutSvc, telegram: telegram}
}

// SaleRequest is what the till sends on commit.
type SaleRequest struct {
	Items []struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
	PaymentMethod string `json:"payment_method"`
	Discount      int    `json:"discount"`
	Customer      string `json:"customer"`
	Note          string `json:"note"`
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, checkout.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, checkout.ErrOutOfStock),
		errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrMissingCustomer),
		errors.Is(err, checkout.ErrInvalidDiscount),
		errors.Is(err, checkout.ErrInvalidPayment):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// --- POST /api/checkout ---
func (h *CheckoutHandler) ProcessSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.MustGet("userID").(uint)
	ctx := c.Request.Context()

	// Rebuild the cart server-side so every line passes the same stock
	// checks the cashier screen enforces.
	cart := checkout.NewCart()
	for _, item := range req.Items {
		product, err := h.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err := cart.AddLine(*product, item.Quantity); err != nil {
			c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
			return
		}
	}

	sale, err := h.checkout.Commit(ctx, cart, checkout.CommitParams{
		PaymentMethod:   req.PaymentMethod,
		DiscountPercent: req.Discount,
		Customer:        req.Customer,
		Note:            req.Note,
		UserID:          userID,
	})
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Fire and forget: the sale is already durable, delivery failures
	// only get logged.
	if h.telegram != nil && h.telegram.Enabled() {
		go h.telegram.SaleCompleted(sale)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Sale successful!",
		"sale_id":    sale.ID,
		"receipt_no": sale.ReceiptNo,
		"total":      sale.Total,
	})
}

// TotalsRequest asks for totals of a hypothetical cart without
// committing anything.
type TotalsRequest struct {
	Items []struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
	Discount int `json:"discount"`
}

// --- POST /api/checkout/totals ---
func (h *CheckoutHandler) ComputeTotals(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	cart := checkout.NewCart()
	for _, item := range req.Items {
		product, err := h.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err := cart.AddLine(*product, item.Quantity); err != nil {
			c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
			return
		}
	}

	totals, err := cart.ComputeTotals(req.Discount)
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, totals)
}
