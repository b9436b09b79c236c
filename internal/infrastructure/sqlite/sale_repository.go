package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre SQLite. Los importes se guardan como texto decimal.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar db o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

type saleRow struct {
	ID         string `db:"id"`
	ClientID   string `db:"client_id"`
	ClientName string `db:"client_name"`
	SellerID   string `db:"seller_id"`
	SellerName string `db:"seller_name"`
	Total      string `db:"total"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}

func (r saleRow) toEntity() *entity.Sale {
	return &entity.Sale{
		ID: r.ID, ClientID: r.ClientID, ClientName: r.ClientName,
		SellerID: r.SellerID, SellerName: r.SellerName,
		Total: parseDecimal(r.Total), Status: r.Status, CreatedAt: parseTime(r.CreatedAt),
	}
}

type saleLineRow struct {
	ID          string `db:"id"`
	SaleID      string `db:"sale_id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
	UnitPrice   string `db:"unit_price"`
	Subtotal    string `db:"subtotal"`
}

const saleSelect = `
	SELECT s.id, s.client_id, c.full_name AS client_name, s.seller_id, u.username AS seller_name,
	       s.total, s.status, s.created_at
	FROM sales s
	JOIN clients c ON c.id = s.client_id
	JOIN users u ON u.id = s.seller_id`

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sales (id, client_id, seller_id, total, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.ClientID, s.SellerID, s.Total.StringFixed(2), s.Status, formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", mapWriteError(err))
	}
	return nil
}

func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", mapWriteError(err))
	}
	return nil
}

func (r *SaleRepo) UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal) error {
	if _, err := r.q.ExecContext(ctx, `UPDATE sales SET total = ? WHERE id = ?`, total.StringFixed(2), saleID); err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.one(ctx, saleSelect+` WHERE s.id = ?`, id)
}

func (r *SaleRepo) one(ctx context.Context, query string, args ...any) (*entity.Sale, error) {
	var row saleRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	var rows []saleLineRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT l.id, l.sale_id, l.product_id, p.name AS product_name, l.quantity, l.unit_price, l.subtotal
		FROM sale_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = ?
		ORDER BY p.name`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	lines := make([]*entity.SaleLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, &entity.SaleLine{
			ID: row.ID, SaleID: row.SaleID, ProductID: row.ProductID, ProductName: row.ProductName,
			Quantity: row.Quantity, UnitPrice: parseDecimal(row.UnitPrice), Subtotal: parseDecimal(row.Subtotal),
		})
	}
	return lines, nil
}

func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	var rows []saleRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, saleSelect+` ORDER BY s.created_at DESC, s.rowid DESC LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *SaleRepo) Latest(ctx context.Context) (*entity.Sale, error) {
	return r.one(ctx, saleSelect+` ORDER BY s.created_at DESC, s.rowid DESC LIMIT 1`)
}

// SumTotals suma en Go: SQLite agregaría los textos como REAL y perdería exactitud.
func (r *SaleRepo) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var totals []string
	if err := sqlx.SelectContext(ctx, r.q, &totals, `SELECT total FROM sales`); err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(parseDecimal(t))
	}
	return sum, nil
}
