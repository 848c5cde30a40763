package user

import (
	"time"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	userDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/user"
)

// User is the administrative view of an account. The password hash never
// leaves the service.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       auth.Role `json:"role"`
	Department string    `json:"department,omitempty"`
	CompanyID  *int64    `json:"company_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrUserNotFound         = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrDuplicateEmail       = internal.NewConflictError("an account with this email already exists", internal.ErrCodeDuplicateEmail)
	ErrInvalidPassword      = internal.NewValidationError("current password is incorrect", internal.ErrCodeInvalidPassword)
	ErrOwnStatus            = internal.NewForbiddenError("cannot change the status of your own account", internal.ErrCodeForbidden)
	ErrMissingDepartment    = internal.NewValidationFieldError("department", "department is required for teachers", internal.ErrCodeValidationFailed)
	ErrMissingCompany       = internal.NewValidationFieldError("company_id", "company_id is required for industrial tutors", internal.ErrCodeValidationFailed)
	ErrInvalidRequestedRole = internal.NewValidationError("role is not a known role", internal.ErrCodeInvalidRole)
)

// checkAttributes makes sure a role has the attribute its data scope filters
// on, so that the account does not end up with a scope matching nothing.
func checkAttributes(role auth.Role, department string, companyID *int64) error {
	switch role {
	case auth.RoleTeacher:
		if department == "" {
			return ErrMissingDepartment
		}
	case auth.RoleIndustrialTutor:
		if companyID == nil || *companyID <= 0 {
			return ErrMissingCompany
		}
	}
	return nil
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       auth.Role(u.Role),
		Department: u.Department,
		CompanyID:  u.CompanyID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*userDatamodel.User) []*User {
	result := make([]*User, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
