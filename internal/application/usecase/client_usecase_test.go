package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func TestClientUseCase_Uniqueness(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewClientUseCase(sqlite.NewClientRepository(db))

	acme, err := uc.Create(ctx, dto.ClientRequest{FullName: "Acme", TaxID: "80012345-6"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, dto.ClientRequest{FullName: "Globex"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.ClientRequest{FullName: "Acme"})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "full_name", dup.Field)

	_, err = uc.Update(ctx, other.ID, dto.ClientRequest{FullName: "Globex", TaxID: "80012345-6"})
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "tax_id", dup.Field)

	// Editar sin cambiar los campos únicos no choca consigo mismo.
	updated, err := uc.Update(ctx, acme.ID, dto.ClientRequest{FullName: "Acme", TaxID: "80012345-6", Phone: "0981 000 000"})
	require.NoError(t, err)
	assert.Equal(t, "0981 000 000", updated.Phone)
	assert.Equal(t, acme.CreatedAt, updated.CreatedAt)

	// Dos clientes sin documento pueden convivir.
	_, err = uc.Create(ctx, dto.ClientRequest{FullName: "Initech"})
	require.NoError(t, err)
}

func TestClientUseCase_DeleteWithSalesIsRefused(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uc := usecase.NewClientUseCase(sqlite.NewClientRepository(db))

	seller := sqlitetest.SeedUser(t, db, "vendedor", entity.RoleVendedor)
	client := sqlitetest.SeedClient(t, db, "Acme")
	product := sqlitetest.SeedProduct(t, db, "Widget", 10, "2.50")
	_, err := sales.NewRegisterSaleUseCase(sqlite.NewTxRunner(db), nil).
		RegisterSale(ctx, client.ID, seller.ID, []sales.LineInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	res, err := uc.Delete(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Equal(t, 1, sqlitetest.Count(t, db, "clients"))
}

// racingClientRepo inserta otro cliente con la misma cédula justo antes del alta,
// como si dos pedidos hubieran pasado la verificación de unicidad a la vez.
type racingClientRepo struct {
	repository.ClientRepository
	rival *entity.Client
}

func (r *racingClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if r.rival != nil {
		rival := r.rival
		r.rival = nil
		if err := r.ClientRepository.Create(ctx, rival); err != nil {
			return err
		}
	}
	return r.ClientRepository.Create(ctx, c)
}

func TestClientUseCase_StoreDuplicateReportsCollidingField(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	repo := &racingClientRepo{
		ClientRepository: sqlite.NewClientRepository(db),
		rival:            &entity.Client{ID: uuid.New().String(), FullName: "Globex", TaxID: "80012345-6", CreatedAt: time.Now().UTC()},
	}
	uc := usecase.NewClientUseCase(repo)

	_, err := uc.Create(ctx, dto.ClientRequest{FullName: "Acme", TaxID: "80012345-6"})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "tax_id", dup.Field)

	repo.rival = &entity.Client{ID: uuid.New().String(), FullName: "Initech", CreatedAt: time.Now().UTC()}
	_, err = uc.Create(ctx, dto.ClientRequest{FullName: "Initech", TaxID: "1234567"})
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "full_name", dup.Field)
	assert.Equal(t, 2, sqlitetest.Count(t, db, "clients"))
}
