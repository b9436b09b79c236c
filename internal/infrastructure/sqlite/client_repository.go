package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre SQLite.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar db o tx.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

type clientRow struct {
	ID        string         `db:"id"`
	FullName  string         `db:"full_name"`
	TaxID     sql.NullString `db:"tax_id"`
	Address   string         `db:"address"`
	Phone     string         `db:"phone"`
	Email     string         `db:"email"`
	CreatedAt string         `db:"created_at"`
}

func (r clientRow) toEntity() *entity.Client {
	return &entity.Client{
		ID: r.ID, FullName: r.FullName, TaxID: r.TaxID.String,
		Address: r.Address, Phone: r.Phone, Email: r.Email,
		CreatedAt: parseTime(r.CreatedAt),
	}
}

const clientSelect = `SELECT id, full_name, tax_id, address, phone, email, created_at FROM clients`

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO clients (id, full_name, tax_id, address, phone, email, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, nullable(c.TaxID), c.Address, c.Phone, c.Email, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", mapWriteError(err))
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var row clientRow
	if err := sqlx.GetContext(ctx, r.q, &row, clientSelect+` WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE clients SET full_name = ?, tax_id = ?, address = ?, phone = ?, email = ? WHERE id = ?`,
		c.FullName, nullable(c.TaxID), c.Address, c.Phone, c.Email, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", mapWriteError(err))
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client: %w", mapWriteError(err))
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	var rows []clientRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, clientSelect+` ORDER BY full_name LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	list := make([]*entity.Client, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *ClientRepo) ExistsByFullName(ctx context.Context, fullName, excludeID string) (bool, error) {
	return r.exists(ctx, "full_name", fullName, excludeID)
}

func (r *ClientRepo) ExistsByTaxID(ctx context.Context, taxID, excludeID string) (bool, error) {
	return r.exists(ctx, "tax_id", taxID, excludeID)
}

func (r *ClientRepo) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE `+column+` = ? AND id <> ?)`, value, excludeID)
	if err != nil {
		return false, fmt.Errorf("exists client %s: %w", column, err)
	}
	return exists, nil
}
