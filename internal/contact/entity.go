// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

// EmergencyContact is a community resource (crisis line, utility,
// city service) shown to every visitor. Names are unique.
type EmergencyContact struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ContactNumber struct {
	ID        string `db:"id"         json:"id"`
	ContactID string `db:"contact_id" json:"-"`
	Number    string `db:"number"     json:"number"`
	NumType   string `db:"numtype"    json:"numtype"`
}
