// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateContactRequest,
) (*ContactResponse, error) {
	c := &EmergencyContact{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}

	numbers := toNumbers(c.ID, req.ContactNumbers)

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Create(ctx, c); err != nil {
			return err
		}

		return txRepo.ReplaceNumbers(ctx, c.ID, numbers)
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ValidationError(
				req.Name + " is already an emergency contact",
			)
		}
		return nil, err
	}

	resp := ToContactResponse(c, numbers)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ContactResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, c)
}

func (s *Service) List(ctx context.Context) ([]ContactResponse, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		resp, err := s.buildResponse(ctx, &contacts[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateContactRequest,
) (*ContactResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	var numbers []ContactNumber
	if req.ContactNumbers != nil {
		numbers = toNumbers(c.ID, *req.ContactNumbers)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Update(ctx, c); err != nil {
			return err
		}

		if req.ContactNumbers != nil {
			return txRepo.ReplaceNumbers(ctx, c.ID, numbers)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ValidationError(
				c.Name + " is already an emergency contact",
			)
		}
		return nil, err
	}

	return s.buildResponse(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) buildResponse(
	ctx context.Context,
	c *EmergencyContact,
) (*ContactResponse, error) {
	numbers, err := s.repo.ListNumbers(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve contact numbers: %w", err)
	}

	resp := ToContactResponse(c, numbers)
	return &resp, nil
}

func toNumbers(contactID string, inputs []ContactNumberInput) []ContactNumber {
	numbers := make([]ContactNumber, 0, len(inputs))
	for _, in := range inputs {
		numbers = append(numbers, ContactNumber{
			ID:        uuid.New().String(),
			ContactID: contactID,
			Number:    in.Number,
			NumType:   in.NumType,
		})
	}
	return numbers
}
