// AngelaMos | 2026
// policy.go

package policy

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is a closed enum with explicit discriminants. The numeric values
// are part of the API contract (role renders as its number, or null when
// unassigned) and must not be renumbered.
type Role int16

const (
	RolePropertyManager Role = 2
	RoleStaff           Role = 3
	RoleAdmin           Role = 4
)

func (r Role) Valid() bool {
	switch r {
	case RolePropertyManager, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RolePropertyManager:
		return "property_manager"
	case RoleStaff:
		return "staff"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("role(%d)", int16(r))
}

func ParseRole(v int16) (Role, error) {
	role := Role(v)
	if !role.Valid() {
		return 0, fmt.Errorf("unknown role value: %d", v)
	}
	return role, nil
}

// NullRole is a nullable Role for storage and JSON. Unassigned users
// carry a NULL role until an admin assigns one.
type NullRole struct {
	Role  Role
	Valid bool
}

func SomeRole(r Role) NullRole {
	return NullRole{Role: r, Valid: true}
}

func (n *NullRole) Scan(value any) error {
	if value == nil {
		n.Role, n.Valid = 0, false
		return nil
	}
	switch v := value.(type) {
	case int64:
		n.Role, n.Valid = Role(v), true
	case int16:
		n.Role, n.Valid = Role(v), true
	default:
		return fmt.Errorf("cannot scan %T into NullRole", value)
	}
	return nil
}

func (n NullRole) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return int64(n.Role), nil
}

func (n NullRole) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(int16(n.Role))
}

func (n *NullRole) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Role, n.Valid = 0, false
		return nil
	}
	var v int16
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	role, err := ParseRole(v)
	if err != nil {
		return err
	}
	n.Role, n.Valid = role, true
	return nil
}

// Operation is a kind of action a caller can attempt on a resource.
type Operation string

const (
	OpRead    Operation = "read"
	OpCreate  Operation = "create"
	OpUpdate  Operation = "update"
	OpArchive Operation = "archive"
	OpDelete  Operation = "delete"
)

// Resource is the kind of entity an operation targets.
type Resource string

const (
	ResourceUser     Resource = "user"
	ResourceTenant   Resource = "tenant"
	ResourceProperty Resource = "property"
	ResourceLease    Resource = "lease"
	ResourceContact  Resource = "emergency_contact"
)

type opSet map[Operation]struct{}

func ops(list ...Operation) opSet {
	set := make(opSet, len(list))
	for _, op := range list {
		set[op] = struct{}{}
	}
	return set
}

var allOps = ops(OpRead, OpCreate, OpUpdate, OpArchive, OpDelete)

// grants is the whole authorization policy. Admins can do everything;
// property managers read everything and manage tenants and leases but
// may not archive tenants or users; staff read everything and manage
// leases. An unassigned role grants nothing.
var grants = map[Role]map[Resource]opSet{
	RoleAdmin: {
		ResourceUser:     allOps,
		ResourceTenant:   allOps,
		ResourceProperty: allOps,
		ResourceLease:    allOps,
		ResourceContact:  allOps,
	},
	RolePropertyManager: {
		ResourceUser:     ops(OpRead),
		ResourceTenant:   ops(OpRead, OpCreate, OpUpdate),
		ResourceProperty: ops(OpRead, OpUpdate),
		ResourceLease:    allOps,
		ResourceContact:  ops(OpRead),
	},
	RoleStaff: {
		ResourceUser:     ops(OpRead),
		ResourceTenant:   ops(OpRead),
		ResourceProperty: ops(OpRead),
		ResourceLease:    allOps,
		ResourceContact:  ops(OpRead),
	},
}

// Can is the single authorization decision point. It is pure: no store
// access, no logging, just the role/operation/resource lookup.
func Can(role NullRole, op Operation, resource Resource) bool {
	if !role.Valid {
		return false
	}

	resources, ok := grants[role.Role]
	if !ok {
		return false
	}

	set, ok := resources[resource]
	if !ok {
		return false
	}

	_, allowed := set[op]
	return allowed
}
