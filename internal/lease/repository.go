// AngelaMos | 2026
// repository.go

package lease

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

const leaseColumns = `
	id, name, property_id, tenant_id, unit_num, occupants,
	date_time_start, date_time_end, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, l *Lease) error
	GetByID(ctx context.Context, id string) (*Lease, error)
	Update(ctx context.Context, l *Lease) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Lease, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Lease, error)
	ListByProperty(ctx context.Context, propertyID string) ([]Lease, error)
	FindOverlapping(
		ctx context.Context,
		tenantID string,
		l *Lease,
	) ([]Lease, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create inserts the lease. A dangling property or tenant reference
// surfaces as core.ErrInvalidInput via the foreign keys.
func (r *repository) Create(ctx context.Context, l *Lease) error {
	query := `
		INSERT INTO leases (
			id, name, property_id, tenant_id, unit_num, occupants,
			date_time_start, date_time_end
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		l.ID,
		l.Name,
		l.PropertyID,
		l.TenantID,
		l.UnitNum,
		l.Occupants,
		l.DateTimeStart,
		l.DateTimeEnd,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return wrapWriteError("create lease", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`

	var l Lease
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lease: %w", err)
	}

	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Lease) error {
	query := `
		UPDATE leases
		SET name = $2, property_id = $3, tenant_id = $4, unit_num = $5,
		    occupants = $6, date_time_start = $7, date_time_end = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &l.UpdatedAt, query,
		l.ID,
		l.Name,
		l.PropertyID,
		l.TenantID,
		l.UnitNum,
		l.Occupants,
		l.DateTimeStart,
		l.DateTimeEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return wrapWriteError("update lease", err)
	}

	return nil
}

// Delete removes the row outright; leases have no archived state.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM leases WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete lease: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Lease, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases
		ORDER BY created_at`

	var leases []Lease
	if err := r.db.SelectContext(ctx, &leases, query); err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}

	return leases, nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID string,
) ([]Lease, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases
		WHERE tenant_id = $1
		ORDER BY created_at`

	var leases []Lease
	if err := r.db.SelectContext(ctx, &leases, query, tenantID); err != nil {
		return nil, fmt.Errorf("list leases by tenant: %w", err)
	}

	return leases, nil
}

func (r *repository) ListByProperty(
	ctx context.Context,
	propertyID string,
) ([]Lease, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases
		WHERE property_id = $1
		ORDER BY created_at`

	var leases []Lease
	if err := r.db.SelectContext(ctx, &leases, query, propertyID); err != nil {
		return nil, fmt.Errorf("list leases by property: %w", err)
	}

	return leases, nil
}

// FindOverlapping returns the tenant's other leases whose interval
// intersects l's, excluding l itself.
func (r *repository) FindOverlapping(
	ctx context.Context,
	tenantID string,
	l *Lease,
) ([]Lease, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases
		WHERE tenant_id = $1
		  AND id <> $2
		  AND date_time_start < $4
		  AND $3 < date_time_end`

	var leases []Lease
	err := r.db.SelectContext(ctx, &leases, query,
		tenantID,
		l.ID,
		l.DateTimeStart,
		l.DateTimeEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("find overlapping leases: %w", err)
	}

	return leases, nil
}

// wrapWriteError maps foreign-key violations to core.ErrInvalidInput so
// callers answer 400 instead of 500 on dangling references.
func wrapWriteError(op string, err error) error {
	if isForeignKeyError(err) {
		return fmt.Errorf("%s: %w", op, core.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
