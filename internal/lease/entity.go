// AngelaMos | 2026
// entity.go

package lease

import (
	"time"
)

// Lease ties a tenant to a property for a date interval. Property is
// optional at creation: a lease can exist before the tenant is placed.
type Lease struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	PropertyID    *string   `db:"property_id"`
	TenantID      string    `db:"tenant_id"`
	UnitNum       string    `db:"unit_num"`
	Occupants     int       `db:"occupants"`
	DateTimeStart time.Time `db:"date_time_start"`
	DateTimeEnd   time.Time `db:"date_time_end"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ContainsInstant reports whether the lease interval covers the given
// moment. The start is inclusive, the end exclusive: a lease ending at
// noon is not active at noon.
func (l *Lease) ContainsInstant(asOf time.Time) bool {
	return !asOf.Before(l.DateTimeStart) && asOf.Before(l.DateTimeEnd)
}

// Overlaps reports whether the lease interval intersects [start, end).
func (l *Lease) Overlaps(start, end time.Time) bool {
	return l.DateTimeStart.Before(end) && start.Before(l.DateTimeEnd)
}

// ActiveAt picks the lease in force at the given moment. When several
// intervals contain it, the most recently created lease wins: later
// agreements supersede earlier ones. Returns nil when none match.
func ActiveAt(leases []Lease, asOf time.Time) *Lease {
	var active *Lease
	for i := range leases {
		l := &leases[i]
		if !l.ContainsInstant(asOf) {
			continue
		}
		if active == nil || l.CreatedAt.After(active.CreatedAt) {
			active = l
		}
	}
	return active
}
