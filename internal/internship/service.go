package internship

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/company"
	"github.com/frahmantamala/internship-management/internal/core/common/validation"
	internshipDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/internship"
	"github.com/frahmantamala/internship-management/internal/core/events"
	"github.com/frahmantamala/internship-management/internal/student"
)

// RepositoryAPI reads are restricted to the rows reachable through scope.
type RepositoryAPI interface {
	List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*internshipDatamodel.Internship, error)
	GetByID(ctx context.Context, scope auth.Scope, id int64) (*internshipDatamodel.Internship, error)
	Create(ctx context.Context, internship *internshipDatamodel.Internship) error
	// UpdateStatus moves the row from one status to another and reports
	// whether the row was still in the from status.
	UpdateStatus(ctx context.Context, id int64, from, to Status, reviewerID int64, note string, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type StudentLookup interface {
	Get(ctx context.Context, scope auth.Scope, id int64) (*student.Student, error)
}

type CompanyLookup interface {
	Get(ctx context.Context, id int64) (*company.Company, error)
}

type Service struct {
	repo      RepositoryAPI
	students  StudentLookup
	companies CompanyLookup
	events    events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, students StudentLookup, companies CompanyLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		students:  students,
		companies: companies,
		events:    publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*Internship, error) {
	if scope.Empty() {
		return []*Internship{}, nil
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, internal.NewValidationFieldError("status", "status is not a known internship status", internal.ErrCodeValidationFailed)
	}

	rows, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		s.logger.Error("failed to list internships", "scope", scope.Kind, "error", err)
		return nil, internal.NewInternalError("failed to list internships", err)
	}
	return FromDataModelSlice(rows), nil
}

// Get returns the internship when it lies inside scope. A row outside the
// scope is reported exactly like a missing one.
func (s *Service) Get(ctx context.Context, scope auth.Scope, id int64) (*Internship, error) {
	if scope.Empty() {
		return nil, ErrInternshipNotFound
	}

	row, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		s.logger.Error("failed to get internship", "internship_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get internship", err)
	}
	if row == nil {
		return nil, ErrInternshipNotFound
	}
	return FromDataModel(row), nil
}

// Create places a student the caller can see at an active company. New
// internships always start pending review.
func (s *Service) Create(ctx context.Context, principal *auth.Principal, dto CreateInternshipDTO) (*Internship, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Title = strings.TrimSpace(dto.Title)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if _, err := s.students.Get(ctx, principal.Scope(), dto.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.companies.Get(ctx, dto.CompanyID); err != nil {
		return nil, err
	}

	internship := NewInternship(dto)
	row := ToDataModel(internship)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create internship", "student_id", dto.StudentID, "error", err)
		return nil, internal.NewInternalError("failed to create internship", err)
	}

	s.logger.Info("internship created",
		"internship_id", row.ID,
		"student_id", row.StudentID,
		"company_id", row.CompanyID,
		"created_by", principal.ID)
	return FromDataModel(row), nil
}

// UpdateStatus applies one lifecycle step. The permission for the requested
// step is checked before the row is looked up.
func (s *Service) UpdateStatus(ctx context.Context, principal *auth.Principal, id int64, dto UpdateStatusDTO) (*Internship, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	next := Status(dto.Status)
	perm, ok := TransitionPermission(next)
	if !ok {
		return nil, ErrInvalidTransition
	}
	if !principal.Can(perm) {
		s.logger.Warn("internship status change denied",
			"internship_id", id,
			"user_id", principal.ID,
			"role", principal.Role,
			"requested_status", next)
		return nil, internal.ErrForbidden
	}

	current, err := s.Get(ctx, principal.Scope(), id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		s.logger.Warn("invalid internship status transition",
			"internship_id", id,
			"current_status", current.Status,
			"requested_status", next)
		return nil, ErrInvalidTransition
	}

	at := s.now()
	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, next, principal.ID, strings.TrimSpace(dto.Note), at)
	if err != nil {
		s.logger.Error("failed to update internship status", "internship_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update internship status", err)
	}
	if !updated {
		return nil, ErrInvalidTransition
	}

	s.publish(ctx, events.NewAuditEvent(events.InternshipReviewed, map[string]interface{}{
		"internship_id": id,
		"from":          string(current.Status),
		"to":            string(next),
		"actor_id":      principal.ID,
	}))

	s.logger.Info("internship status updated",
		"internship_id", id,
		"from", current.Status,
		"to", next,
		"actor_id", principal.ID)

	return s.Get(ctx, principal.Scope(), id)
}

func (s *Service) Delete(ctx context.Context, scope auth.Scope, id int64) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete internship", "internship_id", id, "error", err)
		return internal.NewInternalError("failed to delete internship", err)
	}
	s.logger.Info("internship deleted", "internship_id", id)
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
