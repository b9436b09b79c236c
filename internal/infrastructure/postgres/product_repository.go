package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.name, p.category_id, COALESCE(c.name, ''), p.stock, p.price, p.unit, p.created_at, p.updated_at`

const productFrom = `
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	if err := row.Scan(&p.ID, &p.Name, &categoryID, &p.CategoryName, &p.Stock, &p.Price, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, name_key, category_id, stock, price, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, domain.NameKey(p.Name), nullable(p.CategoryID), p.Stock, p.Price, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", mapWriteError(err))
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT ... FOR UPDATE OF p) hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, id, true)
}

func (r *ProductRepo) get(ctx context.Context, id string, lock bool) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT` + productColumns + productFrom + ` WHERE p.id = $1`
	if lock {
		query += ` FOR UPDATE OF p`
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente, incluido el stock (edición administrativa).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, name_key = $3, category_id = $4, stock = $5, price = $6, unit = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, domain.NameKey(p.Name), nullable(p.CategoryID), p.Stock, p.Price, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", mapWriteError(err))
	}
	return nil
}

// Delete elimina un producto. ErrReferenced si hay líneas o movimientos que lo referencian.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenced
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT`+productColumns+productFrom+` ORDER BY p.name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ExistsByName indica si otro producto ya usa esa clave de nombre.
func (r *ProductRepo) ExistsByName(ctx context.Context, nameKey, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE name_key = $1 AND id::text <> $2)`,
		nameKey, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// DecrementStock descuenta quantity solo si alcanza; la condición se evalúa sobre la versión
// de la fila que ve el UPDATE, por lo que dos ventas concurrentes no pueden dejar stock negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		id, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// IncrementStock suma quantity al stock.
func (r *ProductRepo) IncrementStock(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return nil
}

// Latest último producto creado.
func (r *ProductRepo) Latest(ctx context.Context) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT`+productColumns+productFrom+` ORDER BY p.created_at DESC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest product: %w", err)
	}
	return p, nil
}

// Count cantidad total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
