package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas (DIP).
type SaleRepository interface {
	// Create persiste solo la cabecera.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal) error
	// GetByID devuelve la cabecera con nombres de cliente y vendedor, sin líneas.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	Latest(ctx context.Context) (*entity.Sale, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}
