package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"dokon-pos/internal/catalog"
	"dokon-pos/internal/database"
	"dokon-pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func validInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:     "Coca Cola",
		Code:     "CC001",
		Barcode:  "5449000000996",
		Price:    12000,
		Quantity: 24,
		Category: "Ichimliklar",
	}
}

func TestService_SaveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		product, err := svc.SaveProduct(ctx, validInput())
		require.NoError(t, err)
		assert.NotZero(t, product.ID)
		assert.False(t, product.CreatedAt.IsZero())
	})

	t.Run("Validation", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		tests := []struct {
			name   string
			mutate func(*catalog.ProductInput)
		}{
			{"MissingName", func(in *catalog.ProductInput) { in.Name = "" }},
			{"MissingCode", func(in *catalog.ProductInput) { in.Code = "" }},
			{"MissingCategory", func(in *catalog.ProductInput) { in.Category = "" }},
			{"NegativePrice", func(in *catalog.ProductInput) { in.Price = -1 }},
			{"NegativeQuantity", func(in *catalog.ProductInput) { in.Quantity = -1 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validInput()
				tt.mutate(&in)
				_, err := svc.SaveProduct(ctx, in)
				assert.ErrorIs(t, err, catalog.ErrValidation)
			})
		}
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		_, err := svc.SaveProduct(ctx, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Barcode = "other-barcode"
		_, err = svc.SaveProduct(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrDuplicateCode)
	})

	t.Run("DuplicateBarcode", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		_, err := svc.SaveProduct(ctx, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Code = "CC002"
		_, err = svc.SaveProduct(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrDuplicateBarcode)
	})

	t.Run("EditKeepsOwnCodeAndCreatedAt", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		created, err := svc.SaveProduct(ctx, validInput())
		require.NoError(t, err)

		in := validInput()
		in.ID = created.ID
		in.Price = 13000

		updated, err := svc.SaveProduct(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, int64(13000), updated.Price)
		assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	})

	t.Run("EmptyBarcodesDoNotCollide", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		first := validInput()
		first.Barcode = ""
		_, err := svc.SaveProduct(ctx, first)
		require.NoError(t, err)

		second := validInput()
		second.Code = "CC002"
		second.Barcode = ""
		_, err = svc.SaveProduct(ctx, second)
		assert.NoError(t, err)
	})
}

func TestService_FindByBarcode(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(testDB(t))

	_, err := svc.SaveProduct(ctx, validInput())
	require.NoError(t, err)

	t.Run("ByBarcode", func(t *testing.T) {
		product, err := svc.FindByBarcode(ctx, "5449000000996")
		require.NoError(t, err)
		assert.Equal(t, "Coca Cola", product.Name)
	})

	t.Run("FallsBackToCode", func(t *testing.T) {
		product, err := svc.FindByBarcode(ctx, "CC001")
		require.NoError(t, err)
		assert.Equal(t, "Coca Cola", product.Name)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := svc.FindByBarcode(ctx, "nope")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(testDB(t))

	product, err := svc.SaveProduct(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), catalog.ErrNotFound)
}

func TestService_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAndDuplicate", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		_, err := svc.AddCategory(ctx, "Drinks")
		require.NoError(t, err)

		_, err = svc.AddCategory(ctx, "Drinks")
		assert.ErrorIs(t, err, catalog.ErrDuplicateCategory)

		// exact-match means case matters
		_, err = svc.AddCategory(ctx, "drinks")
		assert.NoError(t, err)
	})

	t.Run("RenameCascadesToProducts", func(t *testing.T) {
		db := testDB(t)
		svc := catalog.NewService(db)

		_, err := svc.AddCategory(ctx, "Drinks")
		require.NoError(t, err)

		in := validInput()
		in.Category = "Drinks"
		product, err := svc.SaveProduct(ctx, in)
		require.NoError(t, err)

		require.NoError(t, svc.RenameCategory(ctx, "Drinks", "Beverages"))

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, "Beverages", got.Category)
	})

	t.Run("DeleteBlockedWhileInUse", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		_, err := svc.AddCategory(ctx, "Drinks")
		require.NoError(t, err)

		in := validInput()
		in.Category = "Drinks"
		product, err := svc.SaveProduct(ctx, in)
		require.NoError(t, err)

		err = svc.DeleteCategory(ctx, "Drinks")
		assert.ErrorIs(t, err, catalog.ErrCategoryInUse)

		require.NoError(t, svc.DeleteProduct(ctx, product.ID))
		assert.NoError(t, svc.DeleteCategory(ctx, "Drinks"))
	})

	t.Run("RenameToExistingBlocked", func(t *testing.T) {
		svc := catalog.NewService(testDB(t))

		_, err := svc.AddCategory(ctx, "Drinks")
		require.NoError(t, err)
		_, err = svc.AddCategory(ctx, "Snacks")
		require.NoError(t, err)

		err = svc.RenameCategory(ctx, "Drinks", "Snacks")
		assert.ErrorIs(t, err, catalog.ErrDuplicateCategory)
	})
}
