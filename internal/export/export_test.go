package export

import (
	"testing"
	"time"

	"dokon-pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSale() *models.Sale {
	return &models.Sale{
		ID:              1,
		ReceiptNo:       4217,
		Customer:        "Karim aka",
		Subtotal:        16000,
		DiscountPercent: 10,
		Total:           14400,
		PaymentMethod:   models.PaymentCash,
		SaleTime:        time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		Items: []models.SaleItem{
			{ProductID: 1, Name: "Coca Cola", PriceAtSale: 12000, Quantity: 1},
			{ProductID: 2, Name: "Fanta", PriceAtSale: 2000, Quantity: 2},
		},
	}
}

func TestFormatUZS(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 UZS"},
		{950, "950 UZS"},
		{12500, "12 500 UZS"},
		{1234567, "1 234 567 UZS"},
		{-4000, "-4 000 UZS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUZS(tt.amount))
	}
}

func TestReceiptHTML(t *testing.T) {
	html, err := ReceiptHTML(sampleSale(), "Sherbek do'kon")
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "Sherbek do&#39;kon")
	assert.Contains(t, body, "#4217")
	assert.Contains(t, body, "Mijoz: Karim aka")
	assert.Contains(t, body, "Coca Cola (1 x 12 000 UZS)")
	assert.Contains(t, body, "Fanta (2 x 2 000 UZS)")
	assert.Contains(t, body, "Chegirma:")
	assert.Contains(t, body, "14 400 UZS")
}

func TestReceiptHTML_NoDiscountNoCustomer(t *testing.T) {
	sale := sampleSale()
	sale.Customer = ""
	sale.DiscountPercent = 0

	html, err := ReceiptHTML(sale, "Sherbek do'kon")
	require.NoError(t, err)

	body := string(html)
	assert.NotContains(t, body, "Mijoz:")
	assert.NotContains(t, body, "Chegirma:")
}

func TestSalesWorkbook(t *testing.T) {
	first := sampleSale()
	second := sampleSale()
	second.ReceiptNo = 4218
	second.Total = 5000

	f, err := SalesWorkbook([]models.Sale{*first, *second})
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Sales", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Receipt", got)

	got, err = f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "#4217", got)

	// items column counts units, not lines
	got, err = f.GetCellValue("Sales", "D2")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	got, err = f.GetCellValue("Sales", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", got)

	got, err = f.GetCellValue("Sales", "G4")
	require.NoError(t, err)
	assert.Equal(t, "19400", got)
}
