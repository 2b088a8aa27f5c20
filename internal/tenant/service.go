// AngelaMos | 2026
// service.go

package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dwellingly-api/internal/archive"
	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

type Service struct {
	db     *sqlx.DB
	repo   Repository
	leases lease.Repository
}

func NewService(db *sqlx.DB, repo Repository, leases lease.Repository) *Service {
	return &Service{db: db, repo: repo, leases: leases}
}

// Create builds the tenant, its staff links, and (when the request
// carries property and dates) its first lease in a single transaction.
// Either everything lands or nothing does.
func (s *Service) Create(
	ctx context.Context,
	req CreateTenantRequest,
) (*TenantResponse, error) {
	t := &Tenant{
		ID:        uuid.New().String(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	var newLease *lease.Lease
	if req.HasLease() {
		start, err := timeutil.ParseDate(*req.DateTimeStart)
		if err != nil {
			return nil, core.ValidationError(
				"invalid date: " + *req.DateTimeStart,
			)
		}

		end, err := timeutil.ParseDate(*req.DateTimeEnd)
		if err != nil {
			return nil, core.ValidationError(
				"invalid date: " + *req.DateTimeEnd,
			)
		}

		if !start.Before(end) {
			return nil, core.ValidationError(
				"dateTimeEnd must be after dateTimeStart",
			)
		}

		occupants := req.Occupants
		if occupants == 0 {
			occupants = 1
		}

		newLease = &lease.Lease{
			ID:            uuid.New().String(),
			PropertyID:    req.PropertyID,
			TenantID:      t.ID,
			UnitNum:       req.UnitNum,
			Occupants:     occupants,
			DateTimeStart: start,
			DateTimeEnd:   end,
		}
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}

		if len(req.StaffIDs) > 0 {
			if err := txRepo.ReplaceStaffLinks(ctx, t.ID, req.StaffIDs); err != nil {
				return err
			}
		}

		if newLease != nil {
			txLeases := lease.NewRepository(tx)
			if err := txLeases.Create(ctx, newLease); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, t)
}

func (s *Service) Get(ctx context.Context, id string) (*TenantResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, t)
}

func (s *Service) List(ctx context.Context) ([]TenantResponse, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		resp, err := s.buildResponse(ctx, &tenants[i])
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
	req UpdateTenantRequest,
) (*TenantResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		t.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		t.LastName = *req.LastName
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Update(ctx, t); err != nil {
			return err
		}

		if req.StaffIDs != nil {
			if err := txRepo.ReplaceStaffLinks(ctx, t.ID, *req.StaffIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, t)
}

// ToggleArchive flips the archival state; the message names the
// direction the flip went.
func (s *Service) ToggleArchive(
	ctx context.Context,
	id string,
) (string, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	next, message := archive.Toggle("Tenant", archive.State(t.Archived))
	t.Archived = bool(next)

	if err := s.repo.SetArchived(ctx, id, t.Archived); err != nil {
		return "", err
	}

	return message, nil
}

// Summary implements lease.TenantDirectory.
func (s *Service) Summary(
	ctx context.Context,
	id string,
) (*lease.TenantSummary, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &lease.TenantSummary{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
	}, nil
}

func (s *Service) buildResponse(
	ctx context.Context,
	t *Tenant,
) (*TenantResponse, error) {
	staff, err := s.repo.ListStaff(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve staff: %w", err)
	}

	leases, err := s.leases.ListByTenant(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve leases: %w", err)
	}

	active := lease.ActiveAt(leases, time.Now())

	resp := ToTenantResponse(t, staff, active)
	return &resp, nil
}

var _ lease.TenantDirectory = (*Service)(nil)
