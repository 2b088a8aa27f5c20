// AngelaMos | 2026
// entity.go

package property

import (
	"time"
)

// Property is a managed building. Manager assignments live in a join
// table against users, mirroring how tenants carry staff links.
type Property struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Zipcode   string    `db:"zipcode"`
	NumUnits  int       `db:"num_units"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ManagerSummary struct {
	ID        string `db:"id"         json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name"  json:"lastName"`
}
