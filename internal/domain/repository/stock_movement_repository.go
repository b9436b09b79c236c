package repository

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID string
	SaleID    string
	Limit     int
	Offset    int
}

// StockMovementRepository libro de movimientos (solo inserción y lectura; nunca se reescribe).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List ordena del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
