package returns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dokon-pos/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrSaleNotFound - the referenced sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrNoLinesSelected - a return needs at least one line.
	ErrNoLinesSelected = errors.New("no lines selected for return")
	// ErrExceedsSold - cumulative returned quantity would exceed the
	// quantity originally sold on that line.
	ErrExceedsSold = errors.New("return exceeds sold quantity")
)

// Service processes returns against prior sales and restores stock.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LineInput selects how many units of one product to return.
type LineInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Process creates a Return for the given sale. Each requested line is
// validated against what the sale actually sold minus what earlier
// returns already gave back, so a product can never be returned more
// times than it was bought. Stock is restored for products that still
// exist; deleted products just keep their snapshot in the return record.
func (s *Service) Process(ctx context.Context, saleID uint, lines []LineInput, reason string) (*models.Return, error) {
	if len(lines) == 0 {
		return nil, ErrNoLinesSelected
	}

	ret := &models.Return{
		SaleID:     saleID,
		Reason:     reason,
		ReturnTime: time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Items").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrSaleNotFound, saleID)
			}
			return fmt.Errorf("load sale: %w", err)
		}

		sold := make(map[uint]models.SaleItem, len(sale.Items))
		for _, item := range sale.Items {
			sold[item.ProductID] = item
		}

		returned, err := alreadyReturned(tx, saleID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			item, ok := sold[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: product %d was not on sale %d",
					ErrExceedsSold, line.ProductID, saleID)
			}

			remaining := item.Quantity - returned[line.ProductID]
			if line.Quantity < 1 || line.Quantity > remaining {
				return fmt.Errorf("%w: %s (sold %d, already returned %d, want %d)",
					ErrExceedsSold, item.Name, item.Quantity,
					returned[line.ProductID], line.Quantity)
			}
			// Count this line too, so duplicate lines for one product in
			// the same request share the cap.
			returned[line.ProductID] += line.Quantity

			ret.Items = append(ret.Items, models.ReturnItem{
				ProductID: line.ProductID,
				Name:      item.Name,
				Price:     item.PriceAtSale,
				Quantity:  line.Quantity,
			})
			ret.Total += item.PriceAtSale * int64(line.Quantity)

			// Restore stock. The product may be gone by now; the return
			// record still stands on its own snapshot.
			if err := tx.Model(&models.Product{}).
				Where("id = ?", line.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("restore stock for product %d: %w", line.ProductID, err)
			}
		}

		if err := tx.Create(ret).Error; err != nil {
			return fmt.Errorf("create return record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// List returns the full return history, newest first.
func (s *Service) List(ctx context.Context) ([]models.Return, error) {
	var out []models.Return
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("return_time desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	return out, nil
}

// alreadyReturned tallies per-product quantities given back by earlier
// returns against this sale.
func alreadyReturned(tx *gorm.DB, saleID uint) (map[uint]int, error) {
	var prior []models.Return
	if err := tx.Preload("Items").Where("sale_id = ?", saleID).Find(&prior).Error; err != nil {
		return nil, fmt.Errorf("load prior returns: %w", err)
	}

	tally := make(map[uint]int)
	for _, r := range prior {
		for _, item := range r.Items {
			tally[item.ProductID] += item.Quantity
		}
	}
	return tally, nil
}
