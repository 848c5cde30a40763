package auth

// Permission is a named predicate over the closed role set. Values can only
// be built inside this package, so every permission a caller can name is one
// of the exported variables in permissions.go and carries an explicit grant
// for each of the four roles.
type Permission struct {
	name   string
	grants grants
}

type grants struct {
	admin           bool
	teacher         bool
	industrialTutor bool
	student         bool
}

func permission(name string, admin, teacher, industrialTutor, student bool) Permission {
	return Permission{
		name: name,
		grants: grants{
			admin:           admin,
			teacher:         teacher,
			industrialTutor: industrialTutor,
			student:         student,
		},
	}
}

func (p Permission) Name() string {
	return p.name
}

func (p Permission) String() string {
	return p.name
}

// Allows reports whether role may perform p. The zero Permission and unknown
// roles are always denied.
func Allows(p Permission, role Role) bool {
	switch role {
	case RoleAdmin:
		return p.grants.admin
	case RoleTeacher:
		return p.grants.teacher
	case RoleIndustrialTutor:
		return p.grants.industrialTutor
	case RoleStudent:
		return p.grants.student
	default:
		return false
	}
}

// AnyOf is true when at least one of perms allows role.
func AnyOf(role Role, perms ...Permission) bool {
	for _, p := range perms {
		if Allows(p, role) {
			return true
		}
	}
	return false
}

// AllOf is true when every one of perms allows role. An empty list grants
// nothing.
func AllOf(role Role, perms ...Permission) bool {
	if len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if !Allows(p, role) {
			return false
		}
	}
	return true
}
