package repository

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete retorna domain.ErrReferenced si el usuario tiene ventas o movimientos.
	Delete(ctx context.Context, id string) error
	// List devuelve todos los usuarios menos excludeID (el que consulta).
	List(ctx context.Context, excludeID string) ([]*entity.User, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
}
