package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/user"
	"github.com/frahmantamala/internship-management/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, user *userDatamodel.User) error
	UpdateRole(ctx context.Context, id int64, role, department string, companyID *int64) error
	UpdateStatus(ctx context.Context, id int64, active bool) error
	UpdateName(ctx context.Context, id int64, name string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type Service struct {
	repo       RepositoryAPI
	events     events.Publisher
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		events:     publisher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	if filter.Role != "" {
		role, ok := auth.ParseRole(filter.Role)
		if !ok {
			return nil, ErrInvalidRequestedRole
		}
		filter.Role = role.String()
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// Create adds an account. The actor must strictly outrank the new account's
// role, so nobody can mint a peer or a superior.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, dto CreateUserDTO) (*User, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Email = auth.NormalizeEmail(dto.Email)
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Department = strings.TrimSpace(dto.Department)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	role, ok := auth.ParseRole(dto.Role)
	if !ok {
		return nil, ErrInvalidRequestedRole
	}
	if !actor.Outranks(role) {
		s.logger.Warn("account creation denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"requested_role", role)
		return nil, internal.ErrInsufficientRank
	}
	if err := checkAttributes(role, dto.Department, dto.CompanyID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         role.String(),
		Department:   dto.Department,
		CompanyID:    dto.CompanyID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "role", row.Role, "created_by", actor.ID)
	return FromDataModel(row), nil
}

// ChangeRole requires the actor to outrank both the current and the requested
// role. Since no role outranks itself, this also rules out changing one's own
// role.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.Principal, id int64, dto UpdateRoleDTO) (*User, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	role, ok := auth.ParseRole(dto.Role)
	if !ok {
		return nil, ErrInvalidRequestedRole
	}

	target, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := auth.Role(target.Role)
	if !actor.Outranks(current) || !actor.Outranks(role) {
		s.logger.Warn("role change denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"target_id", id,
			"current_role", current,
			"requested_role", role)
		return nil, internal.ErrInsufficientRank
	}

	department := target.Department
	if dto.Department != nil {
		department = strings.TrimSpace(*dto.Department)
	}
	companyID := target.CompanyID
	if dto.CompanyID != nil {
		companyID = dto.CompanyID
	}
	if err := checkAttributes(role, department, companyID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, role.String(), department, companyID); err != nil {
		s.logger.Error("failed to update role", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}

	s.publish(ctx, events.NewAuditEvent(events.UserRoleChanged, map[string]interface{}{
		"user_id":  id,
		"from":     current.String(),
		"to":       role.String(),
		"actor_id": actor.ID,
	}))

	return s.Get(ctx, id)
}

// SetStatus activates or deactivates an account the actor outranks. A
// deactivated account is refused on its very next request.
func (s *Service) SetStatus(ctx context.Context, actor *auth.Principal, id int64, dto UpdateStatusDTO) (*User, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if actor.ID == id {
		return nil, ErrOwnStatus
	}

	target, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Outranks(auth.Role(target.Role)) {
		s.logger.Warn("status change denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"target_id", id,
			"target_role", target.Role)
		return nil, internal.ErrInsufficientRank
	}

	active := *dto.IsActive
	if target.IsActive != active {
		if err := s.repo.UpdateStatus(ctx, id, active); err != nil {
			s.logger.Error("failed to update status", "user_id", id, "error", err)
			return nil, internal.NewInternalError("failed to update status", err)
		}
		s.publish(ctx, events.NewAuditEvent(events.UserStatusChanged, map[string]interface{}{
			"user_id":   id,
			"is_active": active,
			"actor_id":  actor.ID,
		}))
	}

	return s.Get(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, actor *auth.Principal, dto UpdateProfileDTO) (*User, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, actor.ID, dto.Name); err != nil {
		s.logger.Error("failed to update profile", "user_id", actor.ID, "error", err)
		return nil, internal.NewInternalError("failed to update profile", err)
	}
	return s.Get(ctx, actor.ID)
}

func (s *Service) ChangePassword(ctx context.Context, actor *auth.Principal, dto ChangePasswordDTO) error {
	if actor == nil {
		return internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return err
	}

	row, err := s.get(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(row.PasswordHash, dto.CurrentPassword); err != nil {
		s.logger.Warn("password change rejected", "user_id", actor.ID)
		return ErrInvalidPassword
	}

	hash, err := auth.HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, actor.ID, hash); err != nil {
		s.logger.Error("failed to update password", "user_id", actor.ID, "error", err)
		return internal.NewInternalError("failed to update password", err)
	}

	s.logger.Info("password changed", "user_id", actor.ID)
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*userDatamodel.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return nil, ErrUserNotFound
	}
	return row, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
