// AngelaMos | 2026
// archive.go

package archive

// Archival is a two-state symmetric toggle, not a one-way soft delete.
// Both User and Tenant share it: DELETE flips the flag and reports which
// direction the flip went.

type State bool

const (
	Active   State = false
	Archived State = true
)

// Toggle flips the archival state and returns the new state together
// with the user-facing confirmation message, e.g. "Tenant archived" or
// "Tenant unarchived".
func Toggle(entity string, current State) (State, string) {
	next := !current
	if next == Archived {
		return next, entity + " archived"
	}
	return next, entity + " unarchived"
}
