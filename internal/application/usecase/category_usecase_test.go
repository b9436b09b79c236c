package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func TestCategoryUseCase_RenameToExistingNameIgnoringCase(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	snacks, err := uc.Create(ctx, dto.CategoryRequest{Name: "Snacks"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, snacks.ID, dto.CategoryRequest{Name: "bebidas"})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Field)

	got, err := uc.GetByID(ctx, snacks.ID)
	require.NoError(t, err)
	assert.Equal(t, "Snacks", got.Name)
}

func TestCategoryUseCase_UpdateKeepingOwnNameIsAllowed(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "BEBIDAS"})
	require.NoError(t, err)
	assert.Equal(t, "BEBIDAS", updated.Name)
}

func TestCategoryUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "   "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = uc.Update(ctx, "inexistente", dto.CategoryRequest{Name: "X"})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "categoría", nf.Entity)
}

func TestCategoryUseCase_DeleteLeavesProductsWithoutCategory(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	categories := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))
	products := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db))

	c, err := categories.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	p, err := products.Create(ctx, productRequest("Agua", c.ID, 5, "1.00"))
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", p.CategoryName)

	res, err := categories.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
}
