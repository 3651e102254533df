package model

import "fmt"

// Role is a permission level. Roles form a total order and are always
// compared with Satisfies ("at least"), never by equality.
type Role string

const (
	RoleStudent    Role = "student"
	RoleClubAdmin  Role = "clubAdmin"
	RoleSuperAdmin Role = "superAdmin"
)

// rank maps every valid role to its position in the total order.
var rank = map[Role]int{
	RoleStudent:    0,
	RoleClubAdmin:  1,
	RoleSuperAdmin: 2,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Rank returns the role's position in the hierarchy. An unknown role is a
// programming error, not a runtime condition: it panics rather than
// silently ranking as student.
func (r Role) Rank() int {
	n, ok := rank[r]
	if !ok {
		panic(fmt.Sprintf("unknown role %q", string(r)))
	}
	return n
}

// Satisfies reports whether r grants at least the required level.
func (r Role) Satisfies(required Role) bool {
	return r.Rank() >= required.Rank()
}
