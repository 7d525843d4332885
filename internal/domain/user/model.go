package user

import "time"

// Role represents what a user may see and change.
type Role string

const (
	RoleView        Role = "view"
	RoleConsultant  Role = "consultant"
	RoleAdmin       Role = "admin"
	RoleMasterAdmin Role = "master-admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleView, RoleConsultant, RoleAdmin, RoleMasterAdmin}

var roleRank = map[Role]int{
	RoleView:        0,
	RoleConsultant:  1,
	RoleAdmin:       2,
	RoleMasterAdmin: 3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// User is an authenticated member of the back office. The role is resolved
// once per request from the presented API key, never toggled ad hoc.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(u User) []string {
	return []string{u.Name, u.Email}
}
