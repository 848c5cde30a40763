package auth

import "strings"

// Role is one of the four fixed account roles. The set is closed: values
// outside it are rejected by ParseRole and rank zero.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleTeacher         Role = "teacher"
	RoleIndustrialTutor Role = "industrial_tutor"
	RoleStudent         Role = "student"
)

// Roles lists every role, highest privilege first.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTeacher, RoleIndustrialTutor, RoleStudent}
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleIndustrialTutor, RoleStudent:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Rank is the privilege rank of r: admin 4, teacher 3, industrial tutor 2,
// student 1, anything else 0.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleTeacher:
		return 3
	case RoleIndustrialTutor:
		return 2
	case RoleStudent:
		return 1
	default:
		return 0
	}
}

// Outranks reports whether a is strictly more privileged than b. It is false
// for equal roles and whenever either role is unknown.
func Outranks(a, b Role) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Rank() > b.Rank()
}
