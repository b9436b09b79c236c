package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo inserta y lista.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, quantity, type, sale_id, user_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ProductID, m.Quantity, m.Type, nullable(m.SaleID), m.UserID, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", mapWriteError(err))
	}
	return nil
}

// List movimientos más recientes primero, filtrando opcionalmente por producto o venta.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var where []string
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("m.product_id::text = $%d", len(args)))
	}
	if f.SaleID != "" {
		args = append(args, f.SaleID)
		where = append(where, fmt.Sprintf("m.sale_id::text = $%d", len(args)))
	}
	query := `
		SELECT m.id, m.product_id, p.name, m.quantity, m.type, m.sale_id, m.user_id, u.username, m.note, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN users u ON u.id = m.user_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY m.created_at DESC, m.id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var saleID *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Quantity, &m.Type, &saleID,
			&m.UserID, &m.Username, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.SaleID = deref(saleID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
