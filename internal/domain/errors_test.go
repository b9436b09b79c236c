package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

func TestNameKey(t *testing.T) {
	assert.Equal(t, domain.NameKey("Bebidas"), domain.NameKey("  BEBIDAS "))
	assert.Equal(t, domain.NameKey("Ñandutí"), domain.NameKey("ñANDUTÍ"))
	assert.NotEqual(t, domain.NameKey("Bebida"), domain.NameKey("Bebidas"))
}

func TestErrorTaxonomy(t *testing.T) {
	stock := &domain.InsufficientStockError{ProductName: "Widget", Available: 10}
	assert.ErrorIs(t, stock, domain.ErrInsufficientStock)
	assert.Contains(t, stock.Error(), "Widget")
	assert.Contains(t, stock.Error(), "10")

	dup := &domain.DuplicateError{Entity: "categoría", Field: "name", Value: "Bebidas"}
	assert.ErrorIs(t, fmt.Errorf("crear: %w", dup), domain.ErrDuplicate)

	nf := &domain.NotFoundError{Entity: "producto", ID: "x"}
	assert.ErrorIs(t, nf, domain.ErrNotFound)
	assert.True(t, domain.IsDomainError(nf))
	assert.False(t, domain.IsDomainError(errors.New("disk full")))
}

func TestIntegrity(t *testing.T) {
	assert.NoError(t, domain.Integrity("op", nil))

	nf := &domain.NotFoundError{Entity: "cliente", ID: "x"}
	assert.Same(t, nf, domain.Integrity("op", nf))

	cause := errors.New("connection reset")
	err := domain.Integrity("guardar venta", cause)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "guardar venta")
}
