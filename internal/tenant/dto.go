// AngelaMos | 2026
// dto.go

package tenant

import (
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

// CreateTenantRequest optionally carries lease fields. When PropertyID
// and both dates are present the tenant and its first lease are created
// in one transaction.
type CreateTenantRequest struct {
	FirstName     string   `json:"firstName" validate:"required,min=1,max=100"`
	LastName      string   `json:"lastName"  validate:"required,min=1,max=100"`
	Phone         string   `json:"phone"     validate:"required,min=7,max=20"`
	StaffIDs      []string `json:"staffIDs"  validate:"omitempty,dive,uuid4"`
	PropertyID    *string  `json:"propertyID,omitempty"    validate:"omitempty,uuid4"`
	UnitNum       string   `json:"unitNum,omitempty"       validate:"omitempty,max=20"`
	Occupants     int      `json:"occupants,omitempty"     validate:"omitempty,min=1,max=100"`
	DateTimeStart *string  `json:"dateTimeStart,omitempty"`
	DateTimeEnd   *string  `json:"dateTimeEnd,omitempty"`
}

func (r *CreateTenantRequest) HasLease() bool {
	return r.PropertyID != nil &&
		r.DateTimeStart != nil &&
		r.DateTimeEnd != nil
}

type UpdateTenantRequest struct {
	FirstName *string   `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string   `json:"lastName,omitempty"  validate:"omitempty,min=1,max=100"`
	Phone     *string   `json:"phone,omitempty"     validate:"omitempty,min=7,max=20"`
	StaffIDs  *[]string `json:"staffIDs,omitempty"  validate:"omitempty,dive,uuid4"`
}

// TenantResponse folds in the active lease: unitNum, occupants, and the
// property reference all come from whichever lease is in force now.
type TenantResponse struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Phone         string         `json:"phone"`
	Archived      bool           `json:"archived"`
	Staff         []StaffSummary `json:"staff"`
	PropertyID    *string        `json:"propertyID"`
	UnitNum       string         `json:"unitNum"`
	Occupants     int            `json:"occupants"`
	DateTimeStart string         `json:"dateTimeStart"`
	DateTimeEnd   string         `json:"dateTimeEnd"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

func ToTenantResponse(
	t *Tenant,
	staff []StaffSummary,
	active *lease.Lease,
) TenantResponse {
	if staff == nil {
		staff = []StaffSummary{}
	}

	resp := TenantResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Phone:     t.Phone,
		Archived:  t.Archived,
		Staff:     staff,
		CreatedAt: timeutil.FormatDate(t.CreatedAt),
		UpdatedAt: timeutil.FormatDate(t.UpdatedAt),
	}

	if active != nil {
		resp.PropertyID = active.PropertyID
		resp.UnitNum = active.UnitNum
		resp.Occupants = active.Occupants
		resp.DateTimeStart = timeutil.FormatDate(active.DateTimeStart)
		resp.DateTimeEnd = timeutil.FormatDate(active.DateTimeEnd)
	}

	return resp
}
