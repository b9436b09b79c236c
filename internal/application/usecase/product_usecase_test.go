package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func productRequest(name, categoryID string, stock int, price string) dto.ProductRequest {
	p := decimal.RequireFromString(price)
	return dto.ProductRequest{Name: name, CategoryID: categoryID, Stock: &stock, Price: &p}
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db))

	p, err := uc.Create(ctx, productRequest("Widget", "", 10, "2.50"))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUnit, p.Unit)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("2.50")))

	_, err = uc.Create(ctx, productRequest("  WIDGET ", "", 1, "1"))
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
}

func TestProductUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db))

	tests := []struct {
		name  string
		in    dto.ProductRequest
		field string
	}{
		{"sin nombre", productRequest("", "", 1, "1"), "name"},
		{"precio negativo", productRequest("A", "", 1, "-1"), "price"},
		{"tres decimales", productRequest("A", "", 1, "1.005"), "price"},
		{"stock negativo", productRequest("A", "", -1, "1"), "stock"},
		{"sin precio", dto.ProductRequest{Name: "A"}, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := uc.Create(ctx, productRequest("A", "no-existe", 1, "1"))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 0, sqlitetest.Count(t, db, "products"))
}

func TestProductUseCase_DeleteWithSalesIsRefused(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db))

	seller := sqlitetest.SeedUser(t, db, "vendedor", entity.RoleVendedor)
	client := sqlitetest.SeedClient(t, db, "Acme")
	sold := sqlitetest.SeedProduct(t, db, "Widget", 10, "2.50")
	unused := sqlitetest.SeedProduct(t, db, "Gadget", 1, "1.00")

	register := sales.NewRegisterSaleUseCase(sqlite.NewTxRunner(db), nil)
	_, err := register.RegisterSale(ctx, client.ID, seller.ID, []sales.LineInput{{ProductID: sold.ID, Quantity: 1}})
	require.NoError(t, err)

	res, err := uc.Delete(ctx, sold.ID)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, 9, sqlitetest.Stock(t, db, sold.ID))

	res, err = uc.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	_, err = uc.Delete(ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
