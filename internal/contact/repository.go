// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *EmergencyContact) error
	GetByID(ctx context.Context, id string) (*EmergencyContact, error)
	Update(ctx context.Context, c *EmergencyContact) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]EmergencyContact, error)
	ReplaceNumbers(
		ctx context.Context,
		contactID string,
		numbers []ContactNumber,
	) error
	ListNumbers(ctx context.Context, contactID string) ([]ContactNumber, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Name,
		c.Description,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create emergency contact: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create emergency contact: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*EmergencyContact, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM emergency_contacts
		WHERE id = $1`

	var c EmergencyContact
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get emergency contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get emergency contact: %w", err)
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *EmergencyContact) error {
	query := `
		UPDATE emergency_contacts
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.Name,
		c.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update emergency contact: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update emergency contact: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update emergency contact: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM emergency_contacts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete emergency contact: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]EmergencyContact, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM emergency_contacts
		ORDER BY name`

	var contacts []EmergencyContact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}

	return contacts, nil
}

// ReplaceNumbers swaps the contact's numbers wholesale; numbers have no
// identity of their own in the API.
func (r *repository) ReplaceNumbers(
	ctx context.Context,
	contactID string,
	numbers []ContactNumber,
) error {
	deleteQuery := `DELETE FROM contact_numbers WHERE contact_id = $1`
	if _, err := r.db.ExecContext(ctx, deleteQuery, contactID); err != nil {
		return fmt.Errorf("clear contact numbers: %w", err)
	}

	insertQuery := `
		INSERT INTO contact_numbers (id, contact_id, number, numtype)
		VALUES ($1, $2, $3, $4)`

	for _, n := range numbers {
		_, err := r.db.ExecContext(ctx, insertQuery,
			n.ID, contactID, n.Number, n.NumType)
		if err != nil {
			return fmt.Errorf("insert contact number: %w", err)
		}
	}

	return nil
}

func (r *repository) ListNumbers(
	ctx context.Context,
	contactID string,
) ([]ContactNumber, error) {
	query := `
		SELECT id, contact_id, number, numtype
		FROM contact_numbers
		WHERE contact_id = $1
		ORDER BY number`

	var numbers []ContactNumber
	if err := r.db.SelectContext(ctx, &numbers, query, contactID); err != nil {
		return nil, fmt.Errorf("list contact numbers: %w", err)
	}

	return numbers, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
