package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, full_name, tax_id, address, phone, email, created_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var taxID *string
	if err := row.Scan(&c.ID, &c.FullName, &taxID, &c.Address, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.TaxID = deref(taxID)
	return &c, nil
}

// Create persiste un nuevo cliente. El tax_id vacío se guarda como NULL para no chocar con el índice único.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.FullName, nullable(c.TaxID), c.Address, c.Phone, c.Email, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", mapWriteError(err))
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de contacto; created_at no cambia.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		UPDATE clients SET full_name = $2, tax_id = $3, address = $4, phone = $5, email = $6
		WHERE id = $1`,
		c.ID, c.FullName, nullable(c.TaxID), c.Address, c.Phone, c.Email,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", mapWriteError(err))
	}
	return nil
}

// Delete elimina el cliente. ErrReferenced si tiene ventas.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete client: %w", mapWriteError(err))
	}
	return nil
}

// List lista clientes por nombre.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+clientColumns+` FROM clients ORDER BY full_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ExistsByFullName compara exacto: el nombre del cliente es único tal cual se escribe.
func (r *ClientRepo) ExistsByFullName(ctx context.Context, fullName, excludeID string) (bool, error) {
	return r.exists(ctx, `full_name`, fullName, excludeID)
}

// ExistsByTaxID indica si otro cliente ya tiene ese documento.
func (r *ClientRepo) ExistsByTaxID(ctx context.Context, taxID, excludeID string) (bool, error) {
	return r.exists(ctx, `tax_id`, taxID, excludeID)
}

func (r *ClientRepo) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM clients WHERE `+column+` = $1 AND id::text <> $2)`,
		value, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists client %s: %w", column, err)
	}
	return exists, nil
}

