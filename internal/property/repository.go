// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

const propertyColumns = `
	id, name, address, city, state, zipcode, num_units,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Property, error)
	ReplaceManagerLinks(
		ctx context.Context,
		propertyID string,
		managerIDs []string,
	) error
	ListManagers(ctx context.Context, propertyID string) ([]ManagerSummary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, name, address, city, state, zipcode, num_units
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Name,
		p.Address,
		p.City,
		p.State,
		p.Zipcode,
		p.NumUnits,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create property: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET name = $2, address = $3, city = $4, state = $5, zipcode = $6,
		    num_units = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Name,
		p.Address,
		p.City,
		p.State,
		p.Zipcode,
		p.NumUnits,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update property: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY name`

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	return properties, nil
}

func (r *repository) ReplaceManagerLinks(
	ctx context.Context,
	propertyID string,
	managerIDs []string,
) error {
	deleteQuery := `DELETE FROM property_managers WHERE property_id = $1`
	if _, err := r.db.ExecContext(ctx, deleteQuery, propertyID); err != nil {
		return fmt.Errorf("clear manager links: %w", err)
	}

	insertQuery := `
		INSERT INTO property_managers (property_id, manager_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	for _, managerID := range managerIDs {
		_, err := r.db.ExecContext(ctx, insertQuery, propertyID, managerID)
		if err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf(
					"link manager %s: %w", managerID, core.ErrInvalidInput,
				)
			}
			return fmt.Errorf("link manager: %w", err)
		}
	}

	return nil
}

func (r *repository) ListManagers(
	ctx context.Context,
	propertyID string,
) ([]ManagerSummary, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name
		FROM property_managers pm
		JOIN users u ON u.id = pm.manager_id
		WHERE pm.property_id = $1
		ORDER BY u.last_name, u.first_name`

	var managers []ManagerSummary
	if err := r.db.SelectContext(ctx, &managers, query, propertyID); err != nil {
		return nil, fmt.Errorf("list property managers: %w", err)
	}

	return managers, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
