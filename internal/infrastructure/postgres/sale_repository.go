package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.client_id, c.full_name, s.seller_id, u.username, s.total, s.status, s.created_at
	FROM sales s
	JOIN clients c ON c.id = s.client_id
	JOIN users u ON u.id = s.seller_id`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.ClientID, &s.ClientName, &s.SellerID, &s.SellerName, &s.Total, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta solo la cabecera; las líneas van con CreateLine dentro de la misma tx.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, client_id, seller_id, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.ClientID, s.SellerID, s.Total, s.Status, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", mapWriteError(err))
	}
	return nil
}

// CreateLine inserta una línea de la venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", mapWriteError(err))
	}
	return nil
}

// UpdateTotal fija el total calculado a partir de las líneas.
func (r *SaleRepo) UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE sales SET total = $2 WHERE id = $1`, saleID, total); err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera con nombres de cliente y vendedor (sin líneas).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListLines líneas de una venta con el nombre del producto.
func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.sale_id, l.product_id, p.name, l.quantity, l.unit_price, l.subtotal
		FROM sale_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1
		ORDER BY p.name`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List ventas más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Latest última venta registrada.
func (r *SaleRepo) Latest(ctx context.Context) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` ORDER BY s.created_at DESC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest sale: %w", err)
	}
	return s, nil
}

// SumTotals suma de los totales de todas las ventas.
func (r *SaleRepo) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM sales`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
