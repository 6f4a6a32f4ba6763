package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"dokon-pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service commits carts. The whole commit - stock decrement, sale
// insert, daily report upsert - runs in one database transaction, so a
// failure partway leaves nothing half-applied.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CommitParams carries the sale-level fields collected at the till.
type CommitParams struct {
	PaymentMethod   string
	DiscountPercent int
	Customer        string
	Note            string
	UserID          uint
}

// Commit turns the cart into a Sale. Preconditions are checked before
// any write: non-empty cart, valid payment method, discount in [0,100],
// and a customer name when the method is debt. Inside the transaction
// every product row is locked and stock is re-checked against the live
// count, so two tills cannot oversell the same item.
func (s *Service) Commit(ctx context.Context, cart *Cart, p CommitParams) (*models.Sale, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !models.ValidPaymentMethod(p.PaymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, p.PaymentMethod)
	}
	if p.PaymentMethod == models.PaymentDebt && strings.TrimSpace(p.Customer) == "" {
		return nil, ErrMissingCustomer
	}

	totals, err := cart.ComputeTotals(p.DiscountPercent)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &models.Sale{
		ReceiptNo:       1000 + rand.Intn(9000),
		UserID:          p.UserID,
		Customer:        p.Customer,
		Subtotal:        totals.Subtotal,
		DiscountPercent: p.DiscountPercent,
		Total:           totals.Total,
		PaymentMethod:   p.PaymentMethod,
		Note:            p.Note,
		Status:          "completed",
		SaleTime:        now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range cart.Lines() {
			var product models.Product

			q := tx
			// SQLite has no SELECT ... FOR UPDATE; its database-level
			// write lock already serializes the transaction.
			if tx.Dialector.Name() == "mysql" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.First(&product, line.ProductID).Error; err != nil {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, line.ProductID)
			}

			if product.Quantity < line.Quantity {
				return fmt.Errorf("%w: %s (have %d, want %d)",
					ErrInsufficientStock, product.Name, product.Quantity, line.Quantity)
			}

			product.Quantity -= line.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return fmt.Errorf("update stock for %s: %w", product.Name, err)
			}

			sale.Items = append(sale.Items, models.SaleItem{
				ProductID:   product.ID,
				Name:        line.Name,
				PriceAtSale: line.Price,
				Quantity:    line.Quantity,
			})
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("create sale record: %w", err)
		}

		return upsertDailyReport(tx, now, cart.ItemCount(), totals.Total)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// upsertDailyReport folds this sale into the bucket for its calendar
// date, creating the bucket on the first sale of the day.
func upsertDailyReport(tx *gorm.DB, at time.Time, items int, total int64) error {
	date := at.Format("2006-01-02")

	var report models.DailyReport
	err := tx.Where("date = ?", date).First(&report).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		report = models.DailyReport{Date: date}
	case err != nil:
		return fmt.Errorf("load daily report %s: %w", date, err)
	}

	report.SaleCount++
	report.TotalItems += items
	report.TotalAmount += total

	if err := tx.Save(&report).Error; err != nil {
		return fmt.Errorf("save daily report %s: %w", date, err)
	}
	return nil
}
