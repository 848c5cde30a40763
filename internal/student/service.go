package student

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/core/common/validation"
	studentDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/student"
)

// RepositoryAPI reads are restricted to the rows reachable through scope.
type RepositoryAPI interface {
	List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*studentDatamodel.Student, error)
	GetByID(ctx context.Context, scope auth.Scope, id int64) (*studentDatamodel.Student, error)
	GetByStudentNumber(ctx context.Context, number string) (*studentDatamodel.Student, error)
	Create(ctx context.Context, student *studentDatamodel.Student) error
	Update(ctx context.Context, student *studentDatamodel.Student) error
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*Student, error) {
	if scope.Empty() {
		return []*Student{}, nil
	}

	rows, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		s.logger.Error("failed to list students", "scope", scope.Kind, "error", err)
		return nil, internal.NewInternalError("failed to list students", err)
	}
	return FromDataModelSlice(rows), nil
}

// Get returns the student when it lies inside scope. A row outside the scope
// is reported exactly like a missing one.
func (s *Service) Get(ctx context.Context, scope auth.Scope, id int64) (*Student, error) {
	if scope.Empty() {
		return nil, ErrStudentNotFound
	}

	row, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		s.logger.Error("failed to get student", "student_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get student", err)
	}
	if row == nil || !row.IsActive {
		return nil, ErrStudentNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, scope auth.Scope, dto CreateStudentDTO) (*Student, error) {
	dto.StudentNumber = strings.TrimSpace(dto.StudentNumber)
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Department = strings.TrimSpace(dto.Department)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	// Department scoped staff only enrol students into their own department.
	switch scope.Kind {
	case auth.ScopeAll:
	case auth.ScopeDepartment:
		if scope.Empty() || !strings.EqualFold(scope.Department, dto.Department) {
			return nil, internal.ErrForbidden
		}
	default:
		return nil, internal.ErrForbidden
	}

	existing, err := s.repo.GetByStudentNumber(ctx, dto.StudentNumber)
	if err != nil {
		return nil, internal.NewInternalError("failed to check student number", err)
	}
	if existing != nil {
		return nil, ErrDuplicateStudentNumber
	}

	row := &studentDatamodel.Student{
		UserID:        dto.UserID,
		StudentNumber: dto.StudentNumber,
		Name:          dto.Name,
		Email:         strings.ToLower(strings.TrimSpace(dto.Email)),
		Department:    dto.Department,
		Program:       dto.Program,
		Year:          dto.Year,
		Phone:         dto.Phone,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create student", "student_number", dto.StudentNumber, "error", err)
		return nil, internal.NewInternalError("failed to create student", err)
	}

	s.logger.Info("student created", "student_id", row.ID, "department", row.Department)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, scope auth.Scope, id int64, dto UpdateStudentDTO) (*Student, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		current.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Email != nil {
		current.Email = strings.ToLower(strings.TrimSpace(*dto.Email))
	}
	if dto.Program != nil {
		current.Program = strings.TrimSpace(*dto.Program)
	}
	if dto.Year != nil {
		current.Year = *dto.Year
	}
	if dto.Phone != nil {
		current.Phone = strings.TrimSpace(*dto.Phone)
	}

	row := ToDataModel(current)
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update student", "student_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update student", err)
	}
	return FromDataModel(row), nil
}

// Delete deactivates the student; internships referencing it are kept.
func (s *Service) Delete(ctx context.Context, scope auth.Scope, id int64) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("failed to deactivate student", "student_id", id, "error", err)
		return internal.NewInternalError("failed to delete student", err)
	}
	s.logger.Info("student deactivated", "student_id", id)
	return nil
}
