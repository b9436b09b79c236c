package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/analytics"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func TestDashboard_EmptyStore(t *testing.T) {
	db := sqlitetest.Open(t)
	uc := analytics.NewDashboardUseCase(sqlite.NewSaleRepository(db), sqlite.NewProductRepository(db))

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.LastSale)
	assert.Nil(t, got.LastProduct)
	assert.True(t, got.SalesTotal.IsZero())
	assert.Equal(t, 0, got.ProductCount)
}

func TestDashboard_Summary(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	seller := sqlitetest.SeedUser(t, db, "vendedor", entity.RoleVendedor)
	client := sqlitetest.SeedClient(t, db, "Acme")
	widget := sqlitetest.SeedProduct(t, db, "Widget", 10, "2.50")
	gadget := sqlitetest.SeedProduct(t, db, "Gadget", 10, "0.10")

	register := sales.NewRegisterSaleUseCase(sqlite.NewTxRunner(db), nil)
	_, err := register.RegisterSale(ctx, client.ID, seller.ID, []sales.LineInput{{ProductID: widget.ID, Quantity: 4}})
	require.NoError(t, err)
	last, err := register.RegisterSale(ctx, client.ID, seller.ID, []sales.LineInput{{ProductID: gadget.ID, Quantity: 3}})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(sqlite.NewSaleRepository(db), sqlite.NewProductRepository(db))
	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	require.NotNil(t, got.LastSale)
	assert.Equal(t, last.ID, got.LastSale.ID)
	assert.Equal(t, "Acme", got.LastSale.ClientName)
	require.NotNil(t, got.LastProduct)
	assert.Equal(t, gadget.ID, got.LastProduct.ID)
	assert.Equal(t, "10.30", got.SalesTotal.StringFixed(2))
	assert.Equal(t, 2, got.ProductCount)
}
