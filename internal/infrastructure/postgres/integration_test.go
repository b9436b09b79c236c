//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/postgres"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/config"
)

// go test -tags integration ./internal/infrastructure/postgres/...
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gestion"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 5})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

type fixture struct {
	seller  *entity.User
	client  *entity.Client
	product *entity.Product
}

func seed(t *testing.T, pool *pgxpool.Pool, stock int, price string) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	seller := &entity.User{
		ID: uuid.New().String(), Username: "vendedor", FullName: "Vendedor", PasswordHash: "x",
		Role: entity.RoleVendedor, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, seller))

	client := &entity.Client{ID: uuid.New().String(), FullName: "Acme", CreatedAt: now}
	require.NoError(t, postgres.NewClientRepository(pool).Create(ctx, client))

	product := &entity.Product{
		ID: uuid.New().String(), Name: "Widget", Stock: stock, Price: decimal.RequireFromString(price),
		Unit: entity.DefaultUnit, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, product))
	return fixture{seller: seller, client: client, product: product}
}

func TestRegisterSale_Postgres_ConcurrentSalesNeverOversell(t *testing.T) {
	pool := setupPool(t)
	fx := seed(t, pool, 5, "2.50")
	uc := sales.NewRegisterSaleUseCase(postgres.NewTxRunner(pool), nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterSale(context.Background(), fx.client.ID, fx.seller.ID,
				[]sales.LineInput{{ProductID: fx.product.ID, Quantity: 3}})
		}(i)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		var stockErr *domain.InsufficientStockError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &stockErr):
			short++
			assert.Equal(t, 2, stockErr.Available)
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)

	p, err := postgres.NewProductRepository(pool).GetByID(context.Background(), fx.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestRegisterSale_Postgres_RollbackOnInsufficientStock(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	fx := seed(t, pool, 10, "2.50")
	uc := sales.NewRegisterSaleUseCase(postgres.NewTxRunner(pool), nil)

	sale, err := uc.RegisterSale(ctx, fx.client.ID, fx.seller.ID,
		[]sales.LineInput{{ProductID: fx.product.ID, Quantity: 4}})
	require.NoError(t, err)
	assert.Equal(t, "10.00", sale.Total.StringFixed(2))

	_, err = uc.RegisterSale(ctx, fx.client.ID, fx.seller.ID,
		[]sales.LineInput{{ProductID: fx.product.ID, Quantity: 20}})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.ProductName)
	assert.Equal(t, 6, stockErr.Available)

	list, err := postgres.NewSaleRepository(pool).List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	movs, err := postgres.NewStockMovementRepository(pool).List(ctx, repository.MovementFilter{ProductID: fx.product.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, -4, movs[0].Quantity)
}

func TestCategoryRepo_Postgres_NameIsUniqueIgnoringCase(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewCategoryRepository(pool)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &entity.Category{ID: uuid.New().String(), Name: "Bebidas", CreatedAt: now, UpdatedAt: now}))
	err := repo.Create(ctx, &entity.Category{ID: uuid.New().String(), Name: "BEBIDAS", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	exists, err := repo.ExistsByName(ctx, domain.NameKey("bebidas"), "")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRegisterSale_Postgres_OppositeLineOrderDoesNotDeadlock(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	fx := seed(t, pool, 100, "2.50")
	now := time.Now().UTC()
	gadget := &entity.Product{
		ID: uuid.New().String(), Name: "Gadget", Stock: 100, Price: decimal.RequireFromString("12.00"),
		Unit: entity.DefaultUnit, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, gadget))
	uc := sales.NewRegisterSaleUseCase(postgres.NewTxRunner(pool), nil)

	orders := [][]sales.LineInput{
		{{ProductID: fx.product.ID, Quantity: 1}, {ProductID: gadget.ID, Quantity: 1}},
		{{ProductID: gadget.ID, Quantity: 1}, {ProductID: fx.product.ID, Quantity: 1}},
	}
	const rounds = 20
	var wg sync.WaitGroup
	errs := make(chan error, rounds*len(orders))
	for i := 0; i < rounds; i++ {
		for _, lines := range orders {
			wg.Add(1)
			go func(lines []sales.LineInput) {
				defer wg.Done()
				_, err := uc.RegisterSale(ctx, fx.client.ID, fx.seller.ID, lines)
				errs <- err
			}(lines)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	products := postgres.NewProductRepository(pool)
	for _, id := range []string{fx.product.ID, gadget.ID} {
		p, err := products.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 100-rounds*len(orders), p.Stock)
	}
}

func TestRepos_Postgres_LengthLimits(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// La clave plegada de 100 ligaduras ocupa 300 caracteres.
	err := postgres.NewCategoryRepository(pool).Create(ctx, &entity.Category{
		ID: uuid.New().String(), Name: strings.Repeat("ﬃ", 100), CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	err = postgres.NewClientRepository(pool).Create(ctx, &entity.Client{
		ID: uuid.New().String(), FullName: "Acme", TaxID: strings.Repeat("1", 30), CreatedAt: now,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleDeletion_Postgres_Policies(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	fx := seed(t, pool, 10, "2.50")
	uc := sales.NewRegisterSaleUseCase(postgres.NewTxRunner(pool), nil)

	sale, err := uc.RegisterSale(ctx, fx.client.ID, fx.seller.ID,
		[]sales.LineInput{{ProductID: fx.product.ID, Quantity: 2}})
	require.NoError(t, err)

	assert.ErrorIs(t, postgres.NewUserRepository(pool).Delete(ctx, fx.seller.ID), domain.ErrReferenced)
	assert.ErrorIs(t, postgres.NewClientRepository(pool).Delete(ctx, fx.client.ID), domain.ErrReferenced)
	assert.ErrorIs(t, postgres.NewProductRepository(pool).Delete(ctx, fx.product.ID), domain.ErrReferenced)

	_, err = pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, sale.ID)
	require.NoError(t, err)

	var lines int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM sale_lines`).Scan(&lines))
	assert.Zero(t, lines)

	movs, err := postgres.NewStockMovementRepository(pool).List(ctx, repository.MovementFilter{ProductID: fx.product.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Empty(t, movs[0].SaleID)
	assert.Equal(t, -2, movs[0].Quantity)
}
