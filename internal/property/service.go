// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
	"github.com/carterperez-dev/dwellingly-api/internal/tenant"
)

type Service struct {
	db      *sqlx.DB
	repo    Repository
	leases  lease.Repository
	tenants tenant.Repository
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	leases lease.Repository,
	tenants tenant.Repository,
) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		leases:  leases,
		tenants: tenants,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreatePropertyRequest,
) (*PropertyResponse, error) {
	numUnits := req.NumUnits
	if numUnits == 0 {
		numUnits = 1
	}

	p := &Property{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zipcode:  req.Zipcode,
		NumUnits: numUnits,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Create(ctx, p); err != nil {
			return err
		}

		if len(req.ManagerIDs) > 0 {
			return txRepo.ReplaceManagerLinks(ctx, p.ID, req.ManagerIDs)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, p)
}

func (s *Service) Get(
	ctx context.Context,
	id string,
) (*PropertyResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]PropertyResponse, error) {
	properties, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		resp, err := s.buildResponse(ctx, &properties[i])
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
	req UpdatePropertyRequest,
) (*PropertyResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Zipcode != nil {
		p.Zipcode = *req.Zipcode
	}
	if req.NumUnits != nil {
		p.NumUnits = *req.NumUnits
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Update(ctx, p); err != nil {
			return err
		}

		if req.ManagerIDs != nil {
			return txRepo.ReplaceManagerLinks(ctx, p.ID, *req.ManagerIDs)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary implements lease.PropertyDirectory.
func (s *Service) Summary(
	ctx context.Context,
	id string,
) (*lease.PropertySummary, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &lease.PropertySummary{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
	}, nil
}

// buildResponse assembles the two occupancy views. The lease history is
// unfiltered; the tenants list keeps only occupants of leases active
// right now, deduplicated by tenant.
func (s *Service) buildResponse(
	ctx context.Context,
	p *Property,
) (*PropertyResponse, error) {
	resp := baseResponse(p)

	managers, err := s.repo.ListManagers(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve managers: %w", err)
	}
	if managers != nil {
		resp.Managers = managers
	}

	leases, err := s.leases.ListByProperty(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve leases: %w", err)
	}

	tenantIDs := make([]string, 0, len(leases))
	seen := make(map[string]struct{}, len(leases))
	for i := range leases {
		if _, ok := seen[leases[i].TenantID]; ok {
			continue
		}
		seen[leases[i].TenantID] = struct{}{}
		tenantIDs = append(tenantIDs, leases[i].TenantID)
	}

	tenantsByID := make(map[string]tenant.Tenant, len(tenantIDs))
	if len(tenantIDs) > 0 {
		tenants, err := s.tenants.ListByIDs(ctx, tenantIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve tenants: %w", err)
		}
		for _, t := range tenants {
			tenantsByID[t.ID] = t
		}
	}

	propertySummary := lease.PropertySummary{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
	}

	for i := range leases {
		l := &leases[i]
		t := tenantsByID[l.TenantID]
		resp.Lease = append(resp.Lease, lease.ToLeaseResponse(
			l,
			lease.TenantSummary{
				ID:        t.ID,
				FirstName: t.FirstName,
				LastName:  t.LastName,
			},
			&propertySummary,
		))
	}

	now := time.Now()
	activeSeen := make(map[string]struct{})
	for i := range leases {
		l := &leases[i]
		if !l.ContainsInstant(now) {
			continue
		}
		if _, ok := activeSeen[l.TenantID]; ok {
			continue
		}
		activeSeen[l.TenantID] = struct{}{}

		t, ok := tenantsByID[l.TenantID]
		if !ok {
			continue
		}

		resp.Tenants = append(resp.Tenants, ActiveTenant{
			ID:        t.ID,
			FirstName: t.FirstName,
			LastName:  t.LastName,
			Phone:     t.Phone,
		})
	}

	return &resp, nil
}

var _ lease.PropertyDirectory = (*Service)(nil)
