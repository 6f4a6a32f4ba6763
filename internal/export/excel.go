package export

import (
	"fmt"
	"strconv"
	"strings"

	"dokon-pos/internal/models"

	"github.com/xuri/excelize/v2"
)

var salesHeader = []string{
	"Receipt", "Date", "Customer", "Items", "Subtotal (UZS)",
	"Discount %", "Total (UZS)", "Payment", "Note",
}

// SalesWorkbook renders the sales history into an xlsx workbook, one
// sale per row plus a grand-total footer.
func SalesWorkbook(sales []models.Sale) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sales"

	f.SetSheetName("Sheet1", sheet)

	for col, title := range salesHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	var grandTotal int64
	for i, sale := range sales {
		row := i + 2
		itemCount := 0
		for _, item := range sale.Items {
			itemCount += item.Quantity
		}
		grandTotal += sale.Total

		values := []interface{}{
			fmt.Sprintf("#%04d", sale.ReceiptNo),
			sale.SaleTime.Format("2006-01-02 15:04"),
			sale.Customer,
			itemCount,
			sale.Subtotal,
			sale.DiscountPercent,
			sale.Total,
			sale.PaymentMethod,
			sale.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	totalRow := len(sales) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return nil, fmt.Errorf("write total label: %w", err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), grandTotal); err != nil {
		return nil, fmt.Errorf("write grand total: %w", err)
	}

	return f, nil
}

// formatUZS renders an amount with thousands separators, the way the
// till prints it ("12 500 UZS").
func formatUZS(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, " ")
	if neg {
		out = "-" + out
	}
	return out + " UZS"
}
