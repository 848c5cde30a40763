package auth

import (
	"context"
	"errors"
	"time"
)

// Principal is the identity of the caller of one request. It is rebuilt from
// the current account record on every request and never persisted.
type Principal struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	CompanyID  *int64 `json:"company_id,omitempty"`
	Active     bool   `json:"active"`
}

// Can reports whether the principal's role grants perm.
func (p *Principal) Can(perm Permission) bool {
	if p == nil {
		return false
	}
	return Allows(perm, p.Role)
}

// Outranks reports whether the principal's role is strictly above role.
func (p *Principal) Outranks(role Role) bool {
	if p == nil {
		return false
	}
	return Outranks(p.Role, role)
}

// Scope binds the role's data scope to the principal's attributes.
func (p *Principal) Scope() Scope {
	if p == nil {
		return Scope{Kind: ScopeNone}
	}
	s := Scope{Kind: ScopeFor(p.Role)}
	switch s.Kind {
	case ScopeDepartment:
		s.Department = p.Department
	case ScopeCompany:
		if p.CompanyID != nil {
			s.CompanyID = *p.CompanyID
		}
	case ScopeSelf:
		s.UserID = p.ID
	}
	return s
}

// Account is the persisted account record the resolver and login consult.
type Account struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Department   string
	CompanyID    *int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToPrincipal converts an active account with a known role into a Principal.
func (a *Account) ToPrincipal() (*Principal, bool) {
	if a == nil || !a.IsActive || !a.Role.Valid() {
		return nil, false
	}
	return &Principal{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Role:       a.Role,
		Department: a.Department,
		CompanyID:  a.CompanyID,
		Active:     true,
	}, true
}

// AccountStore is the persistence collaborator of the auth package. Both
// lookups return ErrAccountNotFound when no record matches.
type AccountStore interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

var ErrAccountNotFound = errors.New("account not found")

type ctxKey string

const (
	principalKey ctxKey = "principal"
	scopeKey     ctxKey = "scope"
)

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

func ContextWithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// ScopeFromContext returns the scope attached by the gate, or a scope that
// matches nothing when none is present.
func ScopeFromContext(ctx context.Context) Scope {
	if s, ok := ctx.Value(scopeKey).(Scope); ok {
		return s
	}
	return Scope{Kind: ScopeNone}
}
