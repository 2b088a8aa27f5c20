// AngelaMos | 2026
// service_test.go

package tenant

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
)

type mockTenantRepo struct {
	getByIDFn     func(ctx context.Context, id string) (*Tenant, error)
	listFn        func(ctx context.Context) ([]Tenant, error)
	setArchivedFn func(ctx context.Context, id string, archived bool) error
	listStaffFn   func(ctx context.Context, tenantID string) ([]StaffSummary, error)
}

func (m *mockTenantRepo) Create(_ context.Context, _ *Tenant) error {
	return nil
}

func (m *mockTenantRepo) GetByID(
	ctx context.Context,
	id string,
) (*Tenant, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, core.ErrNotFound
}

func (m *mockTenantRepo) Update(_ context.Context, _ *Tenant) error {
	return nil
}

func (m *mockTenantRepo) SetArchived(
	ctx context.Context,
	id string,
	archived bool,
) error {
	if m.setArchivedFn != nil {
		return m.setArchivedFn(ctx, id, archived)
	}
	return nil
}

func (m *mockTenantRepo) List(ctx context.Context) ([]Tenant, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockTenantRepo) ListByIDs(
	_ context.Context,
	_ []string,
) ([]Tenant, error) {
	return nil, nil
}

func (m *mockTenantRepo) ReplaceStaffLinks(
	_ context.Context,
	_ string,
	_ []string,
) error {
	return nil
}

func (m *mockTenantRepo) ListStaff(
	ctx context.Context,
	tenantID string,
) ([]StaffSummary, error) {
	if m.listStaffFn != nil {
		return m.listStaffFn(ctx, tenantID)
	}
	return nil, nil
}

type mockLeaseRepo struct {
	listByTenantFn func(ctx context.Context, tenantID string) ([]lease.Lease, error)
}

func (m *mockLeaseRepo) Create(_ context.Context, _ *lease.Lease) error {
	return nil
}

func (m *mockLeaseRepo) GetByID(
	_ context.Context,
	_ string,
) (*lease.Lease, error) {
	return nil, core.ErrNotFound
}

func (m *mockLeaseRepo) Update(_ context.Context, _ *lease.Lease) error {
	return nil
}

func (m *mockLeaseRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *mockLeaseRepo) List(_ context.Context) ([]lease.Lease, error) {
	return nil, nil
}

func (m *mockLeaseRepo) ListByTenant(
	ctx context.Context,
	tenantID string,
) ([]lease.Lease, error) {
	if m.listByTenantFn != nil {
		return m.listByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (m *mockLeaseRepo) ListByProperty(
	_ context.Context,
	_ string,
) ([]lease.Lease, error) {
	return nil, nil
}

func (m *mockLeaseRepo) FindOverlapping(
	_ context.Context,
	_ string,
	_ *lease.Lease,
) ([]lease.Lease, error) {
	return nil, nil
}

func sampleTenant() *Tenant {
	return &Tenant{
		ID:        "tenant-1",
		FirstName: "Renty",
		LastName:  "McRenter",
		Phone:     "555-0199",
		CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestGet_FoldsActiveLease(t *testing.T) {
	propertyID := "property-1"
	repo := &mockTenantRepo{
		getByIDFn: func(_ context.Context, _ string) (*Tenant, error) {
			return sampleTenant(), nil
		},
	}
	leases := &mockLeaseRepo{
		listByTenantFn: func(_ context.Context, _ string) ([]lease.Lease, error) {
			return []lease.Lease{
				{
					ID:            "lease-old",
					TenantID:      "tenant-1",
					PropertyID:    &propertyID,
					UnitNum:       "1A",
					Occupants:     2,
					DateTimeStart: time.Now().AddDate(-2, 0, 0),
					DateTimeEnd:   time.Now().AddDate(-1, 0, 0),
					CreatedAt:     time.Now().AddDate(-2, 0, 0),
				},
				{
					ID:            "lease-current",
					TenantID:      "tenant-1",
					PropertyID:    &propertyID,
					UnitNum:       "2B",
					Occupants:     3,
					DateTimeStart: time.Now().AddDate(0, -1, 0),
					DateTimeEnd:   time.Now().AddDate(1, 0, 0),
					CreatedAt:     time.Now().AddDate(0, -1, 0),
				},
			}, nil
		},
	}
	svc := NewService(nil, repo, leases)

	resp, err := svc.Get(context.Background(), "tenant-1")
	require.NoError(t, err)

	require.NotNil(t, resp.PropertyID)
	assert.Equal(t, propertyID, *resp.PropertyID)
	assert.Equal(t, "2B", resp.UnitNum, "active lease wins over expired one")
	assert.Equal(t, 3, resp.Occupants)
	assert.NotEmpty(t, resp.DateTimeStart)
	assert.NotEmpty(t, resp.DateTimeEnd)
}

func TestGet_NoActiveLease(t *testing.T) {
	repo := &mockTenantRepo{
		getByIDFn: func(_ context.Context, _ string) (*Tenant, error) {
			return sampleTenant(), nil
		},
	}
	svc := NewService(nil, repo, &mockLeaseRepo{})

	resp, err := svc.Get(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Nil(t, resp.PropertyID)
	assert.Empty(t, resp.UnitNum)
	assert.Zero(t, resp.Occupants)
	assert.NotNil(t, resp.Staff, "staff renders as [] rather than null")
}

func TestGet_UnknownTenant(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestToggleArchive_Messages(t *testing.T) {
	existing := sampleTenant()
	repo := &mockTenantRepo{
		getByIDFn: func(_ context.Context, _ string) (*Tenant, error) {
			return existing, nil
		},
		setArchivedFn: func(_ context.Context, _ string, archived bool) error {
			existing.Archived = archived
			return nil
		},
	}
	svc := NewService(nil, repo, &mockLeaseRepo{})

	msg, err := svc.ToggleArchive(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Tenant archived", msg)
	assert.True(t, existing.Archived)

	msg, err = svc.ToggleArchive(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Tenant unarchived", msg)
	assert.False(t, existing.Archived)
}

// Lease validation happens before any row is written, so a bad date
// never leaves a half-created tenant behind.
func TestCreate_RejectsBadLeaseDates(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})

	propertyID := "property-1"
	garbage := "not-a-date"
	end := "2027-01-01"
	_, err := svc.Create(context.Background(), CreateTenantRequest{
		FirstName:     "Renty",
		LastName:      "McRenter",
		Phone:         "555-0199",
		PropertyID:    &propertyID,
		DateTimeStart: &garbage,
		DateTimeEnd:   &end,
	})

	require.Error(t, err)
	var appErr *core.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestCreate_RejectsInvertedInterval(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})

	propertyID := "property-1"
	start := "2027-01-01"
	end := "2026-01-01"
	_, err := svc.Create(context.Background(), CreateTenantRequest{
		FirstName:     "Renty",
		LastName:      "McRenter",
		Phone:         "555-0199",
		PropertyID:    &propertyID,
		DateTimeStart: &start,
		DateTimeEnd:   &end,
	})

	require.Error(t, err)
	var appErr *core.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestSummary(t *testing.T) {
	repo := &mockTenantRepo{
		getByIDFn: func(_ context.Context, _ string) (*Tenant, error) {
			return sampleTenant(), nil
		},
	}
	svc := NewService(nil, repo, &mockLeaseRepo{})

	summary, err := svc.Summary(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", summary.ID)
	assert.Equal(t, "Renty", summary.FirstName)
	assert.Equal(t, "McRenter", summary.LastName)
}
