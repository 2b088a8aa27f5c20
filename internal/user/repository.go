// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

const userColumns = `
	id, email, first_name, last_name, phone, role, password_hash,
	archived, last_active, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastActive(ctx context.Context, id string) error
	SetRole(ctx context.Context, id string, role policy.NullRole) error
	SetArchived(ctx context.Context, id string, archived bool) error
	FindByRole(ctx context.Context, role policy.Role) ([]User, error)
	FindRecentByRole(
		ctx context.Context,
		role policy.Role,
		limit int,
	) ([]User, error)
	SearchByRoleAndName(
		ctx context.Context,
		role policy.Role,
		text string,
	) ([]User, error)
	FindUnassigned(ctx context.Context) ([]User, error)
	List(ctx context.Context) ([]User, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, email, first_name, last_name, phone, role, password_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING archived, last_active, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Role,
		user.PasswordHash,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, phone = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.exec(ctx, "update password", query, id, passwordHash)
}

func (r *repository) UpdateLastActive(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET last_active = NOW()
		WHERE id = $1`

	return r.exec(ctx, "update last active", query, id)
}

func (r *repository) SetRole(
	ctx context.Context,
	id string,
	role policy.NullRole,
) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1`

	return r.exec(ctx, "set role", query, id, role)
}

func (r *repository) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	query := `
		UPDATE users
		SET archived = $2, updated_at = NOW()
		WHERE id = $1`

	return r.exec(ctx, "set archived", query, id, archived)
}

func (r *repository) FindByRole(
	ctx context.Context,
	role policy.Role,
) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, int16(role)); err != nil {
		return nil, fmt.Errorf("find users by role: %w", err)
	}

	return users, nil
}

func (r *repository) FindRecentByRole(
	ctx context.Context,
	role policy.Role,
	limit int,
) ([]User, error) {
	if limit <= 0 {
		limit = 3
	}

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var users []User
	err := r.db.SelectContext(ctx, &users, query, int16(role), limit)
	if err != nil {
		return nil, fmt.Errorf("find recent users by role: %w", err)
	}

	return users, nil
}

func (r *repository) SearchByRoleAndName(
	ctx context.Context,
	role policy.Role,
	text string,
) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2)
		ORDER BY last_name, first_name`

	pattern := "%" + escapeLike(text) + "%"

	var users []User
	err := r.db.SelectContext(ctx, &users, query, int16(role), pattern)
	if err != nil {
		return nil, fmt.Errorf("search users by role and name: %w", err)
	}

	return users, nil
}

func (r *repository) FindUnassigned(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role IS NULL AND archived = false
		ORDER BY created_at DESC`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("find unassigned users: %w", err)
	}

	return users, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) exec(
	ctx context.Context,
	action, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", action, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
