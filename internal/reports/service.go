package reports

import (
	"context"
	"fmt"
	"time"

	"dokon-pos/internal/models"

	"gorm.io/gorm"
)

// Service is read-only: every method aggregates over committed sales and
// never mutates anything. "No data" comes back as an empty result, not
// an error.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Summary is the dashboard header: all-time revenue, order count and the
// latest transactions.
type Summary struct {
	TotalRevenue int64         `json:"total_revenue"`
	TotalOrders  int64         `json:"total_orders"`
	RecentSales  []models.Sale `json:"recent_sales"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	var out Summary

	// COALESCE ensures 0 instead of NULL when no sales exist yet
	err := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&out.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	if err := db.Model(&models.Sale{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	err = db.Preload("Items").Order("sale_time desc").Limit(10).Find(&out.RecentSales).Error
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}

	return &out, nil
}

// TopProduct is one row of the best-sellers table.
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Sold      int    `json:"sold"`
	Revenue   int64  `json:"revenue"`
}

// TopProducts ranks products by units sold since the given time. It
// groups on the sale-item snapshot, so products deleted from the catalog
// still show up in history.
func (s *Service) TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	var out []TopProduct
	err := s.db.WithContext(ctx).
		Table("sale_items").
		Select("sale_items.product_id as product_id, sale_items.name as name, "+
			"SUM(sale_items.quantity) as sold, "+
			"SUM(sale_items.quantity * sale_items.price_at_sale) as revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.sale_time >= ?", since).
		Group("sale_items.product_id, sale_items.name").
		Order("sold desc").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return out, nil
}

// CategoryRevenue is revenue attributed to one department.
type CategoryRevenue struct {
	Category string `json:"category"`
	Sold     int    `json:"sold"`
	Revenue  int64  `json:"revenue"`
}

// RevenueByCategory groups sold items by the category of the live
// product row. Items whose product has since been deleted fall into
// "Uncategorized".
func (s *Service) RevenueByCategory(ctx context.Context, since time.Time) ([]CategoryRevenue, error) {
	var out []CategoryRevenue
	err := s.db.WithContext(ctx).
		Table("sale_items").
		Select("COALESCE(products.category, 'Uncategorized') as category, "+
			"SUM(sale_items.quantity) as sold, "+
			"SUM(sale_items.quantity * sale_items.price_at_sale) as revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("LEFT JOIN products ON products.id = sale_items.product_id").
		Where("sales.sale_time >= ?", since).
		Group("category").
		Order("revenue desc").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	return out, nil
}

// DailySeries returns the last n daily report buckets, oldest first,
// ready for chart rendering.
func (s *Service) DailySeries(ctx context.Context, days int) ([]models.DailyReport, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	var out []models.DailyReport
	err := s.db.WithContext(ctx).
		Where("date >= ?", cutoff).
		Order("date").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}
	return out, nil
}

// ListDailyReports returns every bucket, newest first.
func (s *Service) ListDailyReports(ctx context.Context) ([]models.DailyReport, error) {
	var out []models.DailyReport
	if err := s.db.WithContext(ctx).Order("date desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list daily reports: %w", err)
	}
	return out, nil
}

// ValuationItem is one product row in the stock valuation report.
type ValuationItem struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
	TotalValue int64  `json:"total_value"`
}

// CategoryGroup is one department's table in the valuation report.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     int64           `json:"subtotal"`
}

// Valuation is the full stock valuation payload.
type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal int64           `json:"grand_total"`
}

// StockValuation prices the physical inventory at current retail,
// grouped by department.
func (s *Service) StockValuation(ctx context.Context) (*Valuation, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("category, name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	out := &Valuation{}
	grouped := make(map[string]*CategoryGroup)
	var order []string

	for _, p := range products {
		catName := p.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		group, exists := grouped[catName]
		if !exists {
			group = &CategoryGroup{CategoryName: catName}
			grouped[catName] = group
			order = append(order, catName)
		}

		itemTotal := int64(p.Quantity) * p.Price
		group.Items = append(group.Items, ValuationItem{
			Name:       p.Name,
			Quantity:   p.Quantity,
			Price:      p.Price,
			TotalValue: itemTotal,
		})
		group.Subtotal += itemTotal
		out.GrandTotal += itemTotal
	}

	for _, name := range order {
		out.Categories = append(out.Categories, *grouped[name])
	}
	return out, nil
}

// SalesHistory lists committed sales, newest first, optionally limited
// to a date window and payment method.
func (s *Service) SalesHistory(ctx context.Context, from, to *time.Time, paymentMethod string) ([]models.Sale, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("sale_time desc")
	if from != nil {
		q = q.Where("sale_time >= ?", *from)
	}
	if to != nil {
		q = q.Where("sale_time < ?", *to)
	}
	if paymentMethod != "" {
		q = q.Where("payment_method = ?", paymentMethod)
	}

	var out []models.Sale
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("sales history: %w", err)
	}
	return out, nil
}

// GetSale loads one sale with its items.
func (s *Service) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).Preload("Items").First(&sale, id).Error; err != nil {
		return nil, fmt.Errorf("load sale %d: %w", id, err)
	}
	return &sale, nil
}
