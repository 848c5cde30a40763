package auth

import "time"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
// Role is the role picked on the login form; when present it must match the
// account's role.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher industrial_tutor student"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      AccountView `json:"user"`
}

type AccountView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Principal   *Principal `json:"principal"`
	Scope       Scope      `json:"scope"`
	Permissions []string   `json:"permissions"`
}
