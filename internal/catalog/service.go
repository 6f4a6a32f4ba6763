package catalog

import (
	"context"
	"errors"
	"fmt"

	"dokon-pos/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrValidation - a required field is missing or a number is negative.
	ErrValidation = errors.New("invalid product input")
	// ErrDuplicateCode - another product already carries this code.
	ErrDuplicateCode = errors.New("product code already in use")
	// ErrDuplicateBarcode - another product already carries this barcode.
	ErrDuplicateBarcode = errors.New("barcode already in use")
	// ErrDuplicateCategory - a category with this exact name exists.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrCategoryInUse - products still reference the category.
	ErrCategoryInUse = errors.New("category still has products")
	// ErrNotFound - no such product or category.
	ErrNotFound = errors.New("not found")
)

// Service is the catalog manager: product CRUD with code/barcode
// uniqueness, and category management with rename cascade.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProductInput is what the add/edit form submits. A zero ID means
// create; a non-zero ID edits the existing product.
type ProductInput struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Barcode   string `json:"barcode"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Essential bool   `json:"essential"`
}

func (in ProductInput) validate() error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Code == "":
		return fmt.Errorf("%w: code is required", ErrValidation)
	case in.Category == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	case in.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}

// SaveProduct creates or updates a product. Code and barcode must be
// unique across the catalog, excluding the product being edited.
func (s *Service) SaveProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Product{}).
		Where("code = ? AND id <> ?", in.Code, in.ID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check code: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, in.Code)
	}

	if in.Barcode != "" {
		if err := db.Model(&models.Product{}).
			Where("barcode = ? AND id <> ?", in.Barcode, in.ID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check barcode: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBarcode, in.Barcode)
		}
	}

	product := models.Product{
		ID:        in.ID,
		Name:      in.Name,
		Code:      in.Code,
		Barcode:   in.Barcode,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		Essential: in.Essential,
	}

	if in.ID == 0 {
		if err := db.Create(&product).Error; err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return &product, nil
	}

	var existing models.Product
	if err := db.First(&existing, in.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, in.ID)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	product.CreatedAt = existing.CreatedAt
	if err := db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

// ListProducts returns the catalog, optionally filtered by a search term
// matched against name, code and category.
func (s *Service) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	var products []models.Product
	q := s.db.WithContext(ctx).Order("name")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR category LIKE ?", like, like, like)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// FindByBarcode resolves a scanned code to a product. The scanner feeds
// both the cashier and the product form, and some shops print the
// product code instead of an EAN, so the lookup tries both columns.
func (s *Service) FindByBarcode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("barcode = ? OR code = ?", code, code).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: barcode %s", ErrNotFound, code)
		}
		return nil, fmt.Errorf("scan lookup: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product unconditionally. Sales keep their own
// snapshots, so history stays intact.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}

// --- Categories ---

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AddCategory creates a department. Name collisions are exact-match and
// case-sensitive, same as the shop has always treated them.
func (s *Service) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// RenameCategory renames a department and cascades the new name to every
// product that referenced the old one, in a single transaction.
func (s *Service) RenameCategory(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("name = ?", oldName).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %s", ErrNotFound, oldName)
			}
			return fmt.Errorf("load category: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Category{}).
			Where("name = ? AND id <> ?", newName, category.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
		}

		category.Name = newName
		if err := tx.Save(&category).Error; err != nil {
			return fmt.Errorf("rename category: %w", err)
		}

		if err := tx.Model(&models.Product{}).
			Where("category = ?", oldName).
			Update("category", newName).Error; err != nil {
			return fmt.Errorf("cascade rename to products: %w", err)
		}
		return nil
	})
}

// DeleteCategory removes a department, but only once no product
// references it anymore.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Product{}).Where("category = ?", name).Count(&count).Error; err != nil {
		return fmt.Errorf("check products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s (%d products)", ErrCategoryInUse, name, count)
	}

	res := db.Where("name = ?", name).Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: category %s", ErrNotFound, name)
	}
	return nil
}
