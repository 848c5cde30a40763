package user

type CreateUserDTO struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Name       string `json:"name" validate:"required,min=2,max=150"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department" validate:"max=100"`
	CompanyID  *int64 `json:"company_id" validate:"omitempty,min=1"`
}

// UpdateRoleDTO changes an account's role. Department and company are taken
// along when the new role scopes data by them.
type UpdateRoleDTO struct {
	Role       string  `json:"role" validate:"required"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	CompanyID  *int64  `json:"company_id" validate:"omitempty,min=1"`
}

type UpdateStatusDTO struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UpdateProfileDTO struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" validate:"required,max=72"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type ListFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

type UsersResponse struct {
	Users  []*User `json:"users"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
