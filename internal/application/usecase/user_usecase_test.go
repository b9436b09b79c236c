package usecase_test

import (
	"context"
	"testing"

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

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db))

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, "ana", u.FullName)
	assert.True(t, u.Active)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto"})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "beto", Password: "123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "beto", Password: "secreto", Role: "root"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestUserUseCase_AdminCannotLockThemselvesOut(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db))
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	other := sqlitetest.SeedUser(t, db, "ana", entity.RoleVendedor)

	_, err := uc.Update(ctx, admin.ID, admin.ID, dto.UpdateUserRequest{Role: entity.RoleVendedor})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)

	inactive := false
	_, err = uc.Update(ctx, admin.ID, admin.ID, dto.UpdateUserRequest{Active: &inactive})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "active", verr.Field)

	_, err = uc.Delete(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	res, err := uc.Delete(ctx, admin.ID, other.ID)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}

func TestUserUseCase_UpdateRenameExcludesSelf(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db))
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	ana := sqlitetest.SeedUser(t, db, "ana", entity.RoleVendedor)

	got, err := uc.Update(ctx, admin.ID, ana.ID, dto.UpdateUserRequest{Username: "ana", FullName: "Ana Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.FullName)

	_, err = uc.Update(ctx, admin.ID, ana.ID, dto.UpdateUserRequest{Username: "admin"})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
}

func TestUserUseCase_UpdateKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db))
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)

	ana, err := uc.Create(ctx, dto.CreateUserRequest{Username: "ana", FullName: "Ana Pérez", Email: "ana@example.com", Password: "secreto"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, admin.ID, ana.ID, dto.UpdateUserRequest{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "Ana Pérez", got.FullName)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	got, err = uc.Update(ctx, admin.ID, ana.ID, dto.UpdateUserRequest{Email: "ana.perez@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@example.com", got.Email)
}

func TestUserUseCase_DeleteWithSalesIsRefused(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db))
	admin := sqlitetest.SeedUser(t, db, "admin", entity.RoleAdmin)
	seller := sqlitetest.SeedUser(t, db, "vendedor", entity.RoleVendedor)
	client := sqlitetest.SeedClient(t, db, "Acme")
	product := sqlitetest.SeedProduct(t, db, "Widget", 10, "2.50")
	_, err := sales.NewRegisterSaleUseCase(sqlite.NewTxRunner(db), nil).
		RegisterSale(ctx, client.ID, seller.ID, []sales.LineInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	res, err := uc.Delete(ctx, admin.ID, seller.ID)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.NotEmpty(t, res.Message)

	still, err := uc.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, still.Active)
}
