package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite/sqlitetest"
)

func TestMaxLengths(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	categories := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))
	products := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db))
	clients := usecase.NewClientUseCase(sqlite.NewClientRepository(db))
	users := usecase.NewUserUseCase(sqlite.NewUserRepository(db))

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"categoría de 101 caracteres", func() error {
			_, err := categories.Create(ctx, dto.CategoryRequest{Name: strings.Repeat("a", 101)})
			return err
		}, "name"},
		{"producto de 201 caracteres", func() error {
			_, err := products.Create(ctx, productRequest(strings.Repeat("p", 201), "", 1, "1.00"))
			return err
		}, "name"},
		{"unidad de 51 caracteres", func() error {
			in := productRequest("Cable", "", 1, "1.00")
			in.Unit = strings.Repeat("m", 51)
			_, err := products.Create(ctx, in)
			return err
		}, "unit"},
		{"cédula de 30 dígitos", func() error {
			_, err := clients.Create(ctx, dto.ClientRequest{FullName: "Acme", TaxID: strings.Repeat("1", 30)})
			return err
		}, "tax_id"},
		{"teléfono de 21 caracteres", func() error {
			_, err := clients.Create(ctx, dto.ClientRequest{FullName: "Acme", Phone: strings.Repeat("9", 21)})
			return err
		}, "phone"},
		{"usuario de 151 caracteres", func() error {
			_, err := users.Create(ctx, dto.CreateUserRequest{Username: strings.Repeat("u", 151), Password: "secreto"})
			return err
		}, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *domain.ValidationError
			require.ErrorAs(t, tt.call(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, sqlitetest.Count(t, db, "categories"))
	assert.Zero(t, sqlitetest.Count(t, db, "products"))
	assert.Zero(t, sqlitetest.Count(t, db, "clients"))
	assert.Zero(t, sqlitetest.Count(t, db, "users"))
}

func TestMaxLengths_CountsRunesNotBytes(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	categories := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))

	// 100 ligaduras: 300 bytes y una clave plegada de 300 runas, pero 100 caracteres.
	name := strings.Repeat("ﬃ", 100)
	got, err := categories.Create(ctx, dto.CategoryRequest{Name: name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	_, err = categories.Create(ctx, dto.CategoryRequest{Name: strings.Repeat("ﬃ", 30)})
	require.NoError(t, err)
	_, err = categories.Create(ctx, dto.CategoryRequest{Name: strings.Repeat("FFI", 30)})
	var dup *domain.DuplicateError
	require.ErrorAs(t, err, &dup)
}
