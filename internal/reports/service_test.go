package reports_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dokon-pos/internal/database"
	"dokon-pos/internal/models"
	"dokon-pos/internal/reports"

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

// seedShop loads two products and three sales: Cola sells 5 units across
// two sales, Fanta 2 units, and one Fanta sale is paid as debt.
func seedShop(t *testing.T, db *gorm.DB) (cola, fanta models.Product) {
	t.Helper()

	cola = models.Product{Name: "Cola", Code: "CC001", Price: 1000, Quantity: 20, Category: "Ichimliklar"}
	fanta = models.Product{Name: "Fanta", Code: "FA001", Price: 800, Quantity: 10, Category: "Ichimliklar"}
	require.NoError(t, db.Create(&cola).Error)
	require.NoError(t, db.Create(&fanta).Error)

	now := time.Now()
	sales := []models.Sale{
		{
			Subtotal: 3000, Total: 3000, PaymentMethod: models.PaymentCash,
			Status: "completed", SaleTime: now.Add(-2 * time.Hour),
			Items: []models.SaleItem{{ProductID: cola.ID, Name: "Cola", PriceAtSale: 1000, Quantity: 3}},
		},
		{
			Subtotal: 2000, Total: 2000, PaymentMethod: models.PaymentCard,
			Status: "completed", SaleTime: now.Add(-time.Hour),
			Items: []models.SaleItem{{ProductID: cola.ID, Name: "Cola", PriceAtSale: 1000, Quantity: 2}},
		},
		{
			Subtotal: 1600, Total: 1600, PaymentMethod: models.PaymentDebt, Customer: "Karim aka",
			Status: "completed", SaleTime: now,
			Items: []models.SaleItem{{ProductID: fanta.ID, Name: "Fanta", PriceAtSale: 800, Quantity: 2}},
		},
	}
	for i := range sales {
		require.NoError(t, db.Create(&sales[i]).Error)
	}
	return cola, fanta
}

func TestService_Summary(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	ctx := context.Background()

	t.Run("EmptyShop", func(t *testing.T) {
		sum, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Zero(t, sum.TotalRevenue)
		assert.Zero(t, sum.TotalOrders)
		assert.Empty(t, sum.RecentSales)
	})

	t.Run("WithSales", func(t *testing.T) {
		seedShop(t, db)

		sum, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6600), sum.TotalRevenue)
		assert.Equal(t, int64(3), sum.TotalOrders)
		require.Len(t, sum.RecentSales, 3)
		// newest first
		assert.Equal(t, models.PaymentDebt, sum.RecentSales[0].PaymentMethod)
	})
}

func TestService_TopProducts(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	seedShop(t, db)

	since := time.Now().AddDate(0, 0, -1)
	top, err := svc.TopProducts(context.Background(), since, 5)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Cola", top[0].Name)
	assert.Equal(t, 5, top[0].Sold)
	assert.Equal(t, int64(5000), top[0].Revenue)
	assert.Equal(t, "Fanta", top[1].Name)
	assert.Equal(t, 2, top[1].Sold)
}

func TestService_RevenueByCategory(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	_, fanta := seedShop(t, db)
	since := time.Now().AddDate(0, 0, -1)

	t.Run("GroupsByLiveCategory", func(t *testing.T) {
		rows, err := svc.RevenueByCategory(context.Background(), since)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Ichimliklar", rows[0].Category)
		assert.Equal(t, 7, rows[0].Sold)
		assert.Equal(t, int64(6600), rows[0].Revenue)
	})

	t.Run("DeletedProductFallsToUncategorized", func(t *testing.T) {
		require.NoError(t, db.Delete(&models.Product{}, fanta.ID).Error)

		rows, err := svc.RevenueByCategory(context.Background(), since)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		byName := map[string]int64{}
		for _, r := range rows {
			byName[r.Category] = r.Revenue
		}
		assert.Equal(t, int64(5000), byName["Ichimliklar"])
		assert.Equal(t, int64(1600), byName["Uncategorized"])
	})
}

func TestService_DailyReports(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	ctx := context.Background()

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	lastYear := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	for _, r := range []models.DailyReport{
		{Date: today, SaleCount: 2, TotalItems: 5, TotalAmount: 6600},
		{Date: yesterday, SaleCount: 1, TotalItems: 1, TotalAmount: 1000},
		{Date: lastYear, SaleCount: 9, TotalItems: 9, TotalAmount: 9000},
	} {
		require.NoError(t, db.Create(&r).Error)
	}

	t.Run("SeriesWindowedOldestFirst", func(t *testing.T) {
		series, err := svc.DailySeries(ctx, 7)
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, yesterday, series[0].Date)
		assert.Equal(t, today, series[1].Date)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		list, err := svc.ListDailyReports(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, today, list[0].Date)
		assert.Equal(t, lastYear, list[2].Date)
	})
}

func TestService_StockValuation(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)

	for _, p := range []models.Product{
		{Name: "Cola", Code: "CC001", Price: 1000, Quantity: 10, Category: "Ichimliklar"},
		{Name: "Fanta", Code: "FA001", Price: 800, Quantity: 5, Category: "Ichimliklar"},
		{Name: "Non", Code: "NN001", Price: 3000, Quantity: 2},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	val, err := svc.StockValuation(context.Background())
	require.NoError(t, err)

	require.Len(t, val.Categories, 2)
	assert.Equal(t, int64(10*1000+5*800+2*3000), val.GrandTotal)

	// empty category sorts first, then Ichimliklar
	assert.Equal(t, "Uncategorized", val.Categories[0].CategoryName)
	assert.Equal(t, int64(6000), val.Categories[0].Subtotal)

	drinks := val.Categories[1]
	assert.Equal(t, "Ichimliklar", drinks.CategoryName)
	require.Len(t, drinks.Items, 2)
	assert.Equal(t, int64(14000), drinks.Subtotal)
}

func TestService_SalesHistory(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	seedShop(t, db)
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		all, err := svc.SalesHistory(ctx, nil, nil, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.NotEmpty(t, all[0].Items) // items preloaded
	})

	t.Run("ByPaymentMethod", func(t *testing.T) {
		debts, err := svc.SalesHistory(ctx, nil, nil, models.PaymentDebt)
		require.NoError(t, err)
		require.Len(t, debts, 1)
		assert.Equal(t, "Karim aka", debts[0].Customer)
	})

	t.Run("ByWindow", func(t *testing.T) {
		from := time.Now().Add(-90 * time.Minute)
		recent, err := svc.SalesHistory(ctx, &from, nil, "")
		require.NoError(t, err)
		assert.Len(t, recent, 2)

		to := time.Now().Add(-90 * time.Minute)
		old, err := svc.SalesHistory(ctx, nil, &to, "")
		require.NoError(t, err)
		assert.Len(t, old, 1)
	})
}

func TestService_GetSale(t *testing.T) {
	db := testDB(t)
	svc := reports.NewService(db)
	seedShop(t, db)

	all, err := svc.SalesHistory(context.Background(), nil, nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, all)

	sale, err := svc.GetSale(context.Background(), all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].ID, sale.ID)
	require.NotEmpty(t, sale.Items)

	_, err = svc.GetSale(context.Background(), 999)
	assert.Error(t, err)
}
