package checkout_test

import (
	"testing"

	"dokon-pos/internal/checkout"
	"dokon-pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id uint, name string, price int64, stock int) models.Product {
	return models.Product{ID: id, Name: name, Code: name, Price: price, Quantity: stock}
}

func TestCart_AddLine(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		adds    []int
		wantErr error
		wantQty int
	}{
		{
			name:    "Success",
			stock:   10,
			adds:    []int{3},
			wantQty: 3,
		},
		{
			name:    "MergesExistingLine",
			stock:   10,
			adds:    []int{3, 4},
			wantQty: 7,
		},
		{
			name:    "OutOfStock",
			stock:   0,
			adds:    []int{1},
			wantErr: checkout.ErrOutOfStock,
		},
		{
			name:    "InsufficientStock",
			stock:   2,
			adds:    []int{3},
			wantErr: checkout.ErrInsufficientStock,
		},
		{
			name:    "CumulativeExceedsStock",
			stock:   5,
			adds:    []int{3, 3},
			wantErr: checkout.ErrInsufficientStock,
			wantQty: 3, // first add stays, failing add changes nothing
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := checkout.NewCart()
			p := product(1, "Cola", 1000, tt.stock)

			var lastErr error
			for _, qty := range tt.adds {
				lastErr = cart.AddLine(p, qty)
			}

			if tt.wantErr != nil {
				require.Error(t, lastErr)
				assert.ErrorIs(t, lastErr, tt.wantErr)
			} else {
				require.NoError(t, lastErr)
			}

			if tt.wantQty == 0 {
				assert.True(t, cart.IsEmpty())
				return
			}
			lines := cart.Lines()
			require.Len(t, lines, 1)
			assert.Equal(t, tt.wantQty, lines[0].Quantity)
		})
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := checkout.NewCart()
	require.NoError(t, cart.AddLine(product(1, "Cola", 1000, 10), 3))

	t.Run("SetQuantity", func(t *testing.T) {
		require.NoError(t, cart.UpdateQuantity(1, 5))
		assert.Equal(t, 5, cart.Lines()[0].Quantity)
	})

	t.Run("ExceedsStockLeavesStateUnchanged", func(t *testing.T) {
		err := cart.UpdateQuantity(1, 11)
		assert.ErrorIs(t, err, checkout.ErrInsufficientStock)
		assert.Equal(t, 5, cart.Lines()[0].Quantity)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		err := cart.UpdateQuantity(99, 1)
		assert.ErrorIs(t, err, checkout.ErrProductNotFound)
	})

	t.Run("BelowOneRemovesLine", func(t *testing.T) {
		require.NoError(t, cart.UpdateQuantity(1, 0))
		assert.True(t, cart.IsEmpty())
	})
}

func TestCart_RemoveLine(t *testing.T) {
	cart := checkout.NewCart()
	require.NoError(t, cart.AddLine(product(1, "Cola", 1000, 10), 1))
	require.NoError(t, cart.AddLine(product(2, "Fanta", 800, 10), 1))

	cart.RemoveLine(1)
	cart.RemoveLine(42) // absent line is a no-op

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ProductID)
}

func TestCart_ComputeTotals(t *testing.T) {
	cart := checkout.NewCart()
	require.NoError(t, cart.AddLine(product(1, "Cola", 1000, 10), 3))
	require.NoError(t, cart.AddLine(product(2, "Fanta", 500, 2), 2))

	t.Run("TenPercentDiscount", func(t *testing.T) {
		totals, err := cart.ComputeTotals(10)
		require.NoError(t, err)
		assert.Equal(t, int64(4000), totals.Subtotal)
		assert.Equal(t, int64(400), totals.DiscountAmount)
		assert.Equal(t, int64(3600), totals.Total)
	})

	t.Run("ZeroDiscount", func(t *testing.T) {
		totals, err := cart.ComputeTotals(0)
		require.NoError(t, err)
		assert.Equal(t, int64(4000), totals.Total)
	})

	t.Run("FullDiscount", func(t *testing.T) {
		totals, err := cart.ComputeTotals(100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), totals.Total)
	})

	t.Run("RejectedOutsideRange", func(t *testing.T) {
		_, err := cart.ComputeTotals(101)
		assert.ErrorIs(t, err, checkout.ErrInvalidDiscount)

		_, err = cart.ComputeTotals(-1)
		assert.ErrorIs(t, err, checkout.ErrInvalidDiscount)
	})
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	cart := checkout.NewCart()
	require.NoError(t, cart.AddLine(product(3, "C", 1, 9), 1))
	require.NoError(t, cart.AddLine(product(1, "A", 1, 9), 1))
	require.NoError(t, cart.AddLine(product(2, "B", 1, 9), 1))
	require.NoError(t, cart.AddLine(product(3, "C", 1, 9), 1)) // merge, no move

	var ids []uint
	for _, l := range cart.Lines() {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []uint{3, 1, 2}, ids)
	assert.Equal(t, 4, cart.ItemCount())
}
