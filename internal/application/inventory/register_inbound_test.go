package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func TestRegisterInbound_AddsStockAndRecordsMovement(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	product := sqlitetest.SeedProduct(t, db, "Widget", 2, "2.50")
	uc := inventory.NewRegisterInboundUseCase(sqlite.NewTxRunner(db))

	mov, err := uc.RegisterInbound(ctx, admin.ID, dto.InboundRequest{ProductID: product.ID, Quantity: 8, Note: " compra "})
	require.NoError(t, err)
	assert.Equal(t, 8, mov.Quantity)
	assert.Equal(t, entity.MovementTypeInbound, mov.Type)
	assert.Equal(t, "Widget", mov.ProductName)
	assert.Equal(t, "compra", mov.Note)
	assert.Equal(t, 10, sqlitetest.Stock(t, db, product.ID))
}

func TestRegisterInbound_Errors(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	product := sqlitetest.SeedProduct(t, db, "Widget", 2, "2.50")
	uc := inventory.NewRegisterInboundUseCase(sqlite.NewTxRunner(db))

	_, err := uc.RegisterInbound(ctx, admin.ID, dto.InboundRequest{ProductID: product.ID, Quantity: 0})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)

	_, err = uc.RegisterInbound(ctx, admin.ID, dto.InboundRequest{ProductID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterInbound(ctx, "", dto.InboundRequest{ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, 2, sqlitetest.Stock(t, db, product.ID))
	assert.Equal(t, 0, sqlitetest.Count(t, db, "stock_movements"))
}

func TestLedger_ListsNewestFirstAndFiltersByProduct(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	client := sqlitetest.SeedClient(t, db, "Acme")
	widget := sqlitetest.SeedProduct(t, db, "Widget", 10, "2.50")
	gadget := sqlitetest.SeedProduct(t, db, "Gadget", 0, "5.00")

	inbound := inventory.NewRegisterInboundUseCase(sqlite.NewTxRunner(db))
	_, err := inbound.RegisterInbound(ctx, admin.ID, dto.InboundRequest{ProductID: gadget.ID, Quantity: 3})
	require.NoError(t, err)
	sale, err := sales.NewRegisterSaleUseCase(sqlite.NewTxRunner(db), nil).
		RegisterSale(ctx, client.ID, admin.ID, []sales.LineInput{{ProductID: widget.ID, Quantity: 4}})
	require.NoError(t, err)

	ledger := inventory.NewLedgerUseCase(sqlite.NewStockMovementRepository(db))
	all, err := ledger.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, widget.ID, all.Items[0].ProductID)
	assert.Equal(t, -4, all.Items[0].Quantity)
	assert.Equal(t, sale.ID, all.Items[0].SaleID)
	assert.Equal(t, "admin", all.Items[0].Username)

	only, err := ledger.List(ctx, gadget.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, only.Items, 1)
	assert.Equal(t, 3, only.Items[0].Quantity)
	assert.Equal(t, "Gadget", only.Items[0].ProductName)
}
