package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar db o tx.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

type categoryRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r categoryRow) toEntity() *entity.Category {
	return &entity.Category{ID: r.ID, Name: r.Name, CreatedAt: parseTime(r.CreatedAt), UpdatedAt: parseTime(r.UpdatedAt)}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO categories (id, name, name_key, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, domain.NameKey(c.Name), formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", mapWriteError(err))
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT id, name, created_at, updated_at FROM categories WHERE id = ?`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return row.toEntity(), nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE categories SET name = ?, name_key = ?, updated_at = ? WHERE id = ?`,
		c.Name, domain.NameKey(c.Name), formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", mapWriteError(err))
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category: %w", mapWriteError(err))
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, nameKey, excludeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name_key = ? AND id <> ?)`, nameKey, excludeID)
	if err != nil {
		return false, fmt.Errorf("exists category: %w", err)
	}
	return exists, nil
}
