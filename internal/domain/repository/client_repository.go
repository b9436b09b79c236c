package repository

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete retorna domain.ErrReferenced si el cliente tiene ventas.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	ExistsByFullName(ctx context.Context, fullName, excludeID string) (bool, error)
	ExistsByTaxID(ctx context.Context, taxID, excludeID string) (bool, error)
}
