// AngelaMos | 2026
// dto.go

package property

import (
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

type CreatePropertyRequest struct {
	Name       string   `json:"name"       validate:"required,min=1,max=100"`
	Address    string   `json:"address"    validate:"required,min=1,max=200"`
	City       string   `json:"city"       validate:"required,min=1,max=100"`
	State      string   `json:"state"      validate:"required,min=2,max=50"`
	Zipcode    string   `json:"zipcode"    validate:"required,min=5,max=10"`
	NumUnits   int      `json:"numUnits"   validate:"omitempty,min=1,max=10000"`
	ManagerIDs []string `json:"propertyManagerIDs" validate:"omitempty,dive,uuid4"`
}

type UpdatePropertyRequest struct {
	Name       *string   `json:"name,omitempty"     validate:"omitempty,min=1,max=100"`
	Address    *string   `json:"address,omitempty"  validate:"omitempty,min=1,max=200"`
	City       *string   `json:"city,omitempty"     validate:"omitempty,min=1,max=100"`
	State      *string   `json:"state,omitempty"    validate:"omitempty,min=2,max=50"`
	Zipcode    *string   `json:"zipcode,omitempty"  validate:"omitempty,min=5,max=10"`
	NumUnits   *int      `json:"numUnits,omitempty" validate:"omitempty,min=1,max=10000"`
	ManagerIDs *[]string `json:"propertyManagerIDs,omitempty" validate:"omitempty,dive,uuid4"`
}

// ActiveTenant is a tenant as rendered inside a property: someone whose
// lease here is in force right now.
type ActiveTenant struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// PropertyResponse carries both views of occupancy: `lease` is the full
// unfiltered history, `tenants` only the deduplicated occupants of
// currently active leases. The two are computed independently.
type PropertyResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Address   string                `json:"address"`
	City      string                `json:"city"`
	State     string                `json:"state"`
	Zipcode   string                `json:"zipcode"`
	NumUnits  int                   `json:"numUnits"`
	Managers  []ManagerSummary      `json:"propertyManagers"`
	Lease     []lease.LeaseResponse `json:"lease"`
	Tenants   []ActiveTenant        `json:"tenants"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

func baseResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		Zipcode:   p.Zipcode,
		NumUnits:  p.NumUnits,
		Managers:  []ManagerSummary{},
		Lease:     []lease.LeaseResponse{},
		Tenants:   []ActiveTenant{},
		CreatedAt: timeutil.FormatDate(p.CreatedAt),
		UpdatedAt: timeutil.FormatDate(p.UpdatedAt),
	}
}
