// AngelaMos | 2026
// entity.go

package tenant

import (
	"time"
)

// Tenant is a renter. Like users, tenants are never deleted; the
// archived flag toggles. Staff assignments live in a join table and are
// replaced wholesale on update.
type Tenant struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Phone     string    `db:"phone"`
	Archived  bool      `db:"archived"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// StaffSummary is a staff user as rendered inside a tenant: the join
// table resolved against users.
type StaffSummary struct {
	ID        string `db:"id"        json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name"  json:"lastName"`
}
