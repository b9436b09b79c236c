package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewSaleLine_Subtotal(t *testing.T) {
	l, err := entity.NewSaleLine("p1", 4, d("2.50"))
	require.NoError(t, err)
	assert.True(t, l.Subtotal.Equal(d("10")))
	assert.NotEmpty(t, l.ID)
}

func TestNewSaleLine_Validation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		qty       int
		price     string
		field     string
	}{
		{"sin producto", "", 1, "1", "product_id"},
		{"cantidad cero", "p1", 0, "1", "quantity"},
		{"cantidad negativa", "p1", -2, "1", "quantity"},
		{"precio negativo", "p1", 1, "-0.01", "unit_price"},
		{"tres decimales", "p1", 1, "0.125", "unit_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entity.NewSaleLine(tt.productID, tt.qty, d(tt.price))
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Ceros de relleno no cuentan como decimales extra.
	_, err := entity.NewSaleLine("p1", 1, d("2.500"))
	assert.NoError(t, err)
}

func TestSale_TotalIsExactSumOfLines(t *testing.T) {
	sale := entity.NewSale("c1", "u1", time.Now())
	assert.Equal(t, entity.SaleStatusPaid, sale.Status)
	assert.True(t, sale.Total.IsZero())

	for _, price := range []string{"0.10", "0.20", "0.05"} {
		l, err := entity.NewSaleLine("p-"+price, 3, d(price))
		require.NoError(t, err)
		sale.AddLine(l)
		assert.Equal(t, sale.ID, l.SaleID)
	}
	// 0.30 + 0.60 + 0.15
	assert.Equal(t, "1.05", sale.Total.StringFixed(2))
	assert.True(t, sale.Total.Equal(d("1.05")))
}

func TestNewStockMovement_SignMatchesType(t *testing.T) {
	now := time.Now()

	in, err := entity.NewStockMovement("p1", "u1", "", entity.MovementTypeInbound, 5, "compra", now)
	require.NoError(t, err)
	assert.Equal(t, 5, in.Quantity)

	out, err := entity.NewStockMovement("p1", "u1", "s1", entity.MovementTypeOutbound, -3, "", now)
	require.NoError(t, err)
	assert.Equal(t, "s1", out.SaleID)

	_, err = entity.NewStockMovement("p1", "u1", "", entity.MovementTypeInbound, -1, "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.NewStockMovement("p1", "u1", "", entity.MovementTypeOutbound, 2, "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.NewStockMovement("p1", "u1", "", "ajuste", 2, "", now)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
}
