// AngelaMos | 2026
// service.go

package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

// TenantDirectory and PropertyDirectory resolve referenced ids to their
// embedded summary shapes. The tenant and property services implement
// them; the interfaces live here so this package owns what it needs.
type TenantDirectory interface {
	Summary(ctx context.Context, id string) (*TenantSummary, error)
}

type PropertyDirectory interface {
	Summary(ctx context.Context, id string) (*PropertySummary, error)
}

type Service struct {
	repo       Repository
	tenants    TenantDirectory
	properties PropertyDirectory
}

func NewService(
	repo Repository,
	tenants TenantDirectory,
	properties PropertyDirectory,
) *Service {
	return &Service{
		repo:       repo,
		tenants:    tenants,
		properties: properties,
	}
}

func (s *Service) Create(ctx context.Context, req CreateLeaseRequest) error {
	start, end, err := parseInterval(req.DateTimeStart, req.DateTimeEnd)
	if err != nil {
		return err
	}

	occupants := req.Occupants
	if occupants == 0 {
		occupants = 1
	}

	l := &Lease{
		ID:            uuid.New().String(),
		Name:          req.Name,
		PropertyID:    req.PropertyID,
		TenantID:      req.TenantID,
		UnitNum:       req.UnitNum,
		Occupants:     occupants,
		DateTimeStart: start,
		DateTimeEnd:   end,
	}

	if err := s.validateReferences(ctx, l); err != nil {
		return err
	}

	if err := s.rejectOverlap(ctx, l); err != nil {
		return err
	}

	return s.repo.Create(ctx, l)
}

func (s *Service) Get(ctx context.Context, id string) (*LeaseResponse, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, l)
}

func (s *Service) List(ctx context.Context) ([]LeaseResponse, error) {
	leases, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		resp, err := s.buildResponse(ctx, &leases[i])
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
	req UpdateLeaseRequest,
) (*LeaseResponse, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.TenantID != nil {
		l.TenantID = *req.TenantID
	}
	if req.PropertyID != nil {
		l.PropertyID = req.PropertyID
	}
	if req.UnitNum != nil {
		l.UnitNum = *req.UnitNum
	}
	if req.Occupants != nil {
		l.Occupants = *req.Occupants
	}
	if req.DateTimeStart != nil {
		start, parseErr := timeOrInvalid(*req.DateTimeStart)
		if parseErr != nil {
			return nil, parseErr
		}
		l.DateTimeStart = start
	}
	if req.DateTimeEnd != nil {
		end, parseErr := timeOrInvalid(*req.DateTimeEnd)
		if parseErr != nil {
			return nil, parseErr
		}
		l.DateTimeEnd = end
	}

	if !l.DateTimeStart.Before(l.DateTimeEnd) {
		return nil, core.ValidationError("dateTimeEnd must be after dateTimeStart")
	}

	if err := s.validateReferences(ctx, l); err != nil {
		return nil, err
	}

	if err := s.rejectOverlap(ctx, l); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, l)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ActiveLeaseFor returns the lease in force for the tenant at asOf, or
// nil when the tenant has none.
func (s *Service) ActiveLeaseFor(
	ctx context.Context,
	tenantID string,
	asOf time.Time,
) (*Lease, error) {
	leases, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return ActiveAt(leases, asOf), nil
}

func (s *Service) HistoryForTenant(
	ctx context.Context,
	tenantID string,
) ([]Lease, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) HistoryForProperty(
	ctx context.Context,
	propertyID string,
) ([]Lease, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

// validateReferences turns dangling tenant or property ids into 400s:
// a lease pointing nowhere is the caller's mistake, not a missing lease.
func (s *Service) validateReferences(ctx context.Context, l *Lease) error {
	if _, err := s.tenants.Summary(ctx, l.TenantID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ValidationError("tenant does not exist")
		}
		return fmt.Errorf("check tenant: %w", err)
	}

	if l.PropertyID != nil {
		if _, err := s.properties.Summary(ctx, *l.PropertyID); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.ValidationError("property does not exist")
			}
			return fmt.Errorf("check property: %w", err)
		}
	}

	return nil
}

func (s *Service) rejectOverlap(ctx context.Context, l *Lease) error {
	overlapping, err := s.repo.FindOverlapping(ctx, l.TenantID, l)
	if err != nil {
		return err
	}

	if len(overlapping) > 0 {
		return core.ValidationError(
			"tenant already has a lease covering this period",
		)
	}

	return nil
}

func (s *Service) buildResponse(
	ctx context.Context,
	l *Lease,
) (*LeaseResponse, error) {
	tenant, err := s.tenants.Summary(ctx, l.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}

	var property *PropertySummary
	if l.PropertyID != nil {
		property, err = s.properties.Summary(ctx, *l.PropertyID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve property: %w", err)
		}
	}

	resp := ToLeaseResponse(l, *tenant, property)
	return &resp, nil
}

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := timeOrInvalid(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := timeOrInvalid(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, core.ValidationError(
			"dateTimeEnd must be after dateTimeStart",
		)
	}

	return start, end, nil
}

func timeOrInvalid(value string) (time.Time, error) {
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, core.ValidationError("invalid date: " + value)
	}
	return t, nil
}
