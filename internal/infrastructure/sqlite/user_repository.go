package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar db o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

type userRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	Active       bool   `db:"active"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	return &entity.User{
		ID: r.ID, Username: r.Username, FullName: r.FullName, Email: r.Email,
		PasswordHash: r.PasswordHash, Role: r.Role, Active: r.Active,
		CreatedAt: parseTime(r.CreatedAt), UpdatedAt: parseTime(r.UpdatedAt),
	}
}

const userSelect = `SELECT id, username, full_name, email, password_hash, role, active, created_at, updated_at FROM users`

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, full_name, email, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FullName, u.Email, u.PasswordHash, u.Role, u.Active,
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapWriteError(err))
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.one(ctx, userSelect+` WHERE id = ?`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.one(ctx, userSelect+` WHERE username = ?`, username)
}

func (r *UserRepo) one(ctx context.Context, query, arg string) (*entity.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users SET username = ?, full_name = ?, email = ?, password_hash = ?, role = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		u.Username, u.FullName, u.Email, u.PasswordHash, u.Role, u.Active, formatTime(u.UpdatedAt), u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", mapWriteError(err))
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", mapWriteError(err))
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, excludeID string) ([]*entity.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, userSelect+` WHERE id <> ? ORDER BY username`, excludeID); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = ? AND id <> ?)`, username, excludeID)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}
