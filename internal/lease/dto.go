// AngelaMos | 2026
// dto.go

package lease

import (
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

type CreateLeaseRequest struct {
	Name          string  `json:"name"          validate:"omitempty,max=100"`
	TenantID      string  `json:"tenantID"      validate:"required,uuid4"`
	PropertyID    *string `json:"propertyID"    validate:"omitempty,uuid4"`
	UnitNum       string  `json:"unitNum"       validate:"omitempty,max=20"`
	Occupants     int     `json:"occupants"     validate:"omitempty,min=1,max=100"`
	DateTimeStart string  `json:"dateTimeStart" validate:"required"`
	DateTimeEnd   string  `json:"dateTimeEnd"   validate:"required"`
}

type UpdateLeaseRequest struct {
	Name          *string `json:"name,omitempty"          validate:"omitempty,max=100"`
	TenantID      *string `json:"tenantID,omitempty"      validate:"omitempty,uuid4"`
	PropertyID    *string `json:"propertyID,omitempty"    validate:"omitempty,uuid4"`
	UnitNum       *string `json:"unitNum,omitempty"       validate:"omitempty,max=20"`
	Occupants     *int    `json:"occupants,omitempty"     validate:"omitempty,min=1,max=100"`
	DateTimeStart *string `json:"dateTimeStart,omitempty"`
	DateTimeEnd   *string `json:"dateTimeEnd,omitempty"`
}

// TenantSummary and PropertySummary are the embedded reference shapes:
// the contract renders tenantID and propertyID as objects, not bare ids.
type TenantSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type PropertySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type LeaseResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Property      *PropertySummary `json:"propertyID"`
	Tenant        TenantSummary    `json:"tenantID"`
	UnitNum       string           `json:"unitNum"`
	Occupants     int              `json:"occupants"`
	DateTimeStart string           `json:"dateTimeStart"`
	DateTimeEnd   string           `json:"dateTimeEnd"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type LeaseListResponse struct {
	Leases []LeaseResponse `json:"Leases"`
}

func ToLeaseResponse(
	l *Lease,
	tenant TenantSummary,
	property *PropertySummary,
) LeaseResponse {
	return LeaseResponse{
		ID:            l.ID,
		Name:          l.Name,
		Property:      property,
		Tenant:        tenant,
		UnitNum:       l.UnitNum,
		Occupants:     l.Occupants,
		DateTimeStart: timeutil.FormatDate(l.DateTimeStart),
		DateTimeEnd:   timeutil.FormatDate(l.DateTimeEnd),
		CreatedAt:     timeutil.FormatDate(l.CreatedAt),
		UpdatedAt:     timeutil.FormatDate(l.UpdatedAt),
	}
}
