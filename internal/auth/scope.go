package auth

// DataScope classifies which rows of a resource a role may reach on top of
// the coarse permission check.
type DataScope string

const (
	ScopeAll        DataScope = "all"
	ScopeDepartment DataScope = "department"
	ScopeCompany    DataScope = "company"
	ScopeSelf       DataScope = "self"
	ScopeNone       DataScope = "none"
)

// ScopeFor maps a role to its data scope. Unknown roles get ScopeNone.
func ScopeFor(role Role) DataScope {
	switch role {
	case RoleAdmin:
		return ScopeAll
	case RoleTeacher:
		return ScopeDepartment
	case RoleIndustrialTutor:
		return ScopeCompany
	case RoleStudent:
		return ScopeSelf
	default:
		return ScopeNone
	}
}

// Scope is a DataScope bound to the attributes of one principal, ready to be
// turned into a query filter by a repository.
type Scope struct {
	Kind       DataScope `json:"kind"`
	UserID     int64     `json:"user_id,omitempty"`
	Department string    `json:"department,omitempty"`
	CompanyID  int64     `json:"company_id,omitempty"`
}

// Empty reports whether the scope can match no row at all, either because it
// is ScopeNone or because the principal lacks the attribute its kind filters on.
func (s Scope) Empty() bool {
	switch s.Kind {
	case ScopeAll:
		return false
	case ScopeDepartment:
		return s.Department == ""
	case ScopeCompany:
		return s.CompanyID == 0
	case ScopeSelf:
		return s.UserID == 0
	default:
		return true
	}
}
