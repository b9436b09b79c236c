package repository

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Al borrar una categoría, sus productos quedan sin categoría.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Category, error)
	// ExistsByName busca por clave plegada (domain.NameKey), excluyendo excludeID si no es vacío.
	ExistsByName(ctx context.Context, nameKey, excludeID string) (bool, error)
}
