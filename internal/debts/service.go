package debts

import (
	"context"
	"errors"
	"fmt"

	"dokon-pos/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound - no sale with that id.
	ErrNotFound = errors.New("debt not found")
	// ErrNotDebt - the sale is not (or no longer) a debt.
	ErrNotDebt = errors.New("sale is not a debt")
)

// Service handles deferred-payment sales. A debt is just a sale whose
// payment method is "debt"; there is no separate ledger. The sale's
// items, subtotal and total stay frozen here too - only the customer,
// the note and the payment method (on settlement) may change.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns open debts, newest first, optionally filtered by customer
// name.
func (s *Service) List(ctx context.Context, search string) ([]models.Sale, error) {
	q := s.db.WithContext(ctx).
		Preload("Items").
		Where("payment_method = ?", models.PaymentDebt).
		Order("sale_time desc")
	if search != "" {
		q = q.Where("customer LIKE ?", "%"+search+"%")
	}

	var out []models.Sale
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return out, nil
}

// TotalOutstanding sums every open debt.
func (s *Service) TotalOutstanding(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Sale{}).
		Where("payment_method = ?", models.PaymentDebt).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum debts: %w", err)
	}
	return total, nil
}

// Settle marks a debt as paid by flipping the payment method to cash.
// The sale drops out of the debts view; nothing else changes.
func (s *Service) Settle(ctx context.Context, saleID uint) (*models.Sale, error) {
	sale, err := s.loadDebt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	sale.PaymentMethod = models.PaymentCash
	if err := s.db.WithContext(ctx).Save(sale).Error; err != nil {
		return nil, fmt.Errorf("settle debt %d: %w", saleID, err)
	}
	return sale, nil
}

// UpdateDetails edits the mutable fields of a debt: customer and note.
// Total and discount are part of the committed ledger and cannot be
// edited here.
func (s *Service) UpdateDetails(ctx context.Context, saleID uint, customer, note string) (*models.Sale, error) {
	sale, err := s.loadDebt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	sale.Customer = customer
	sale.Note = note
	if err := s.db.WithContext(ctx).Save(sale).Error; err != nil {
		return nil, fmt.Errorf("update debt %d: %w", saleID, err)
	}
	return sale, nil
}

func (s *Service) loadDebt(ctx context.Context, saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).Preload("Items").First(&sale, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("load sale %d: %w", saleID, err)
	}
	if sale.PaymentMethod != models.PaymentDebt {
		return nil, fmt.Errorf("%w: id %d", ErrNotDebt, saleID)
	}
	return &sale, nil
}
