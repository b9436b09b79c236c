package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type productRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	CategoryID   sql.NullString `db:"category_id"`
	CategoryName string         `db:"category_name"`
	Stock        int            `db:"stock"`
	Price        string         `db:"price"`
	Unit         string         `db:"unit"`
	CreatedAt    string         `db:"created_at"`
	UpdatedAt    string         `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:           r.ID,
		Name:         r.Name,
		CategoryID:   r.CategoryID.String,
		CategoryName: r.CategoryName,
		Stock:        r.Stock,
		Price:        parseDecimal(r.Price),
		Unit:         r.Unit,
		CreatedAt:    parseTime(r.CreatedAt),
		UpdatedAt:    parseTime(r.UpdatedAt),
	}
}

const productSelect = `
	SELECT p.id, p.name, p.category_id, COALESCE(c.name, '') AS category_name, p.stock, p.price, p.unit, p.created_at, p.updated_at
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (id, name, name_key, category_id, stock, price, unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, domain.NameKey(p.Name), nullable(p.CategoryID), p.Stock, p.Price.StringFixed(2), p.Unit,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", mapWriteError(err))
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.one(ctx, productSelect+` WHERE p.id = ?`, id)
}

// GetForUpdate igual que GetByID: el bloqueo lo da la transacción IMMEDIATE, que ya tomó la escritura.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) one(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, name_key = ?, category_id = ?, stock = ?, price = ?, unit = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, domain.NameKey(p.Name), nullable(p.CategoryID), p.Stock, p.Price.StringFixed(2), p.Unit,
		formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", mapWriteError(err))
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", mapWriteError(err))
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, productSelect+` ORDER BY p.name LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *ProductRepo) ExistsByName(ctx context.Context, nameKey, excludeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name_key = ? AND id <> ?)`, nameKey, excludeID)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// DecrementStock descuenta solo si alcanza; false si no hubo fila que cumpliera la condición.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`,
		quantity, formatTime(timeNow()), id, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return n == 1, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, quantity int) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`,
		quantity, formatTime(timeNow()), id)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return nil
}

func (r *ProductRepo) Latest(ctx context.Context) (*entity.Product, error) {
	return r.one(ctx, productSelect+` ORDER BY p.created_at DESC, p.rowid DESC LIMIT 1`)
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
