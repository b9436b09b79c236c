package repository

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete retorna domain.ErrReferenced si hay líneas de venta o movimientos que lo usan.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ExistsByName(ctx context.Context, nameKey, excludeID string) (bool, error)
	// DecrementStock resta quantity solo si hay stock suficiente; false si no se actualizó ninguna fila.
	DecrementStock(ctx context.Context, id string, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id string, quantity int) error
	Latest(ctx context.Context) (*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
