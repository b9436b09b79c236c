package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre SQLite.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar db o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

type movementRow struct {
	ID          string         `db:"id"`
	ProductID   string         `db:"product_id"`
	ProductName string         `db:"product_name"`
	Quantity    int            `db:"quantity"`
	Type        string         `db:"type"`
	SaleID      sql.NullString `db:"sale_id"`
	UserID      string         `db:"user_id"`
	Username    string         `db:"username"`
	Note        string         `db:"note"`
	CreatedAt   string         `db:"created_at"`
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (id, product_id, quantity, type, sale_id, user_id, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.Quantity, m.Type, nullable(m.SaleID), m.UserID, m.Note, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", mapWriteError(err))
	}
	return nil
}

func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var where []string
	var args []any
	if f.ProductID != "" {
		where = append(where, "m.product_id = ?")
		args = append(args, f.ProductID)
	}
	if f.SaleID != "" {
		where = append(where, "m.sale_id = ?")
		args = append(args, f.SaleID)
	}
	query := `
		SELECT m.id, m.product_id, p.name AS product_name, m.quantity, m.type, m.sale_id,
		       m.user_id, u.username, m.note, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN users u ON u.id = m.user_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY m.created_at DESC, m.rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		list = append(list, &entity.StockMovement{
			ID: row.ID, ProductID: row.ProductID, ProductName: row.ProductName,
			Quantity: row.Quantity, Type: row.Type, SaleID: row.SaleID.String,
			UserID: row.UserID, Username: row.Username, Note: row.Note,
			CreatedAt: parseTime(row.CreatedAt),
		})
	}
	return list, nil
}
