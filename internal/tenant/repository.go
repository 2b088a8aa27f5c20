// AngelaMos | 2026
// repository.go

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

const tenantColumns = `
	id, first_name, last_name, phone, archived, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	SetArchived(ctx context.Context, id string, archived bool) error
	List(ctx context.Context) ([]Tenant, error)
	ListByIDs(ctx context.Context, ids []string) ([]Tenant, error)
	ReplaceStaffLinks(ctx context.Context, tenantID string, staffIDs []string) error
	ListStaff(ctx context.Context, tenantID string) ([]StaffSummary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	query := `
		INSERT INTO tenants (id, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		t.ID,
		t.FirstName,
		t.LastName,
		t.Phone,
	).Scan(&t.Archived, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tenant: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Tenant) error {
	query := `
		UPDATE tenants
		SET first_name = $2, last_name = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &t.UpdatedAt, query,
		t.ID,
		t.FirstName,
		t.LastName,
		t.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tenant: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}

	return nil
}

func (r *repository) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	query := `
		UPDATE tenants
		SET archived = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, archived)
	if err != nil {
		return fmt.Errorf("set tenant archived: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set tenant archived: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set tenant archived: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Tenant, error) {
	query := `SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY created_at`

	var tenants []Tenant
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	return tenants, nil
}

func (r *repository) ListByIDs(
	ctx context.Context,
	ids []string,
) ([]Tenant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+tenantColumns+` FROM tenants WHERE id IN (?)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("list tenants by ids: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var tenants []Tenant
	if err := r.db.SelectContext(ctx, &tenants, query, args...); err != nil {
		return nil, fmt.Errorf("list tenants by ids: %w", err)
	}

	return tenants, nil
}

// ReplaceStaffLinks swaps the tenant's staff assignments atomically with
// respect to the surrounding executor. A dangling staff id surfaces as
// core.ErrInvalidInput via the foreign key.
func (r *repository) ReplaceStaffLinks(
	ctx context.Context,
	tenantID string,
	staffIDs []string,
) error {
	deleteQuery := `DELETE FROM tenant_staff WHERE tenant_id = $1`
	if _, err := r.db.ExecContext(ctx, deleteQuery, tenantID); err != nil {
		return fmt.Errorf("clear staff links: %w", err)
	}

	insertQuery := `
		INSERT INTO tenant_staff (tenant_id, staff_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	for _, staffID := range staffIDs {
		if _, err := r.db.ExecContext(ctx, insertQuery, tenantID, staffID); err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf(
					"link staff %s: %w", staffID, core.ErrInvalidInput,
				)
			}
			return fmt.Errorf("link staff: %w", err)
		}
	}

	return nil
}

func (r *repository) ListStaff(
	ctx context.Context,
	tenantID string,
) ([]StaffSummary, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name
		FROM tenant_staff ts
		JOIN users u ON u.id = ts.staff_id
		WHERE ts.tenant_id = $1
		ORDER BY u.last_name, u.first_name`

	var staff []StaffSummary
	if err := r.db.SelectContext(ctx, &staff, query, tenantID); err != nil {
		return nil, fmt.Errorf("list tenant staff: %w", err)
	}

	return staff, nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
