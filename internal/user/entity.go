// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

// User is a staff member, property manager, or admin. Users are never
// physically deleted; the archived flag toggles instead. PasswordHash is
// the only credential state: the plaintext exists solely as a parameter
// to Service.Create and Service.ResetPassword.
type User struct {
	ID           string          `db:"id"`
	Email        string          `db:"email"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	Phone        string          `db:"phone"`
	Role         policy.NullRole `db:"role"`
	PasswordHash string          `db:"password_hash"`
	Archived     bool            `db:"archived"`
	LastActive   time.Time       `db:"last_active"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role.Valid && u.Role.Role == policy.RoleAdmin
}
