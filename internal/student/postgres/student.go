package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/frahmantamala/internship-management/internal/auth"
	studentDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/student"
	"github.com/frahmantamala/internship-management/internal/student"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) student.RepositoryAPI {
	return &StudentRepository{db: db}
}

// scoped narrows q to the students reachable through scope.
func scoped(q *gorm.DB, scope auth.Scope) *gorm.DB {
	if scope.Empty() {
		return q.Where("1 = 0")
	}
	switch scope.Kind {
	case auth.ScopeDepartment:
		return q.Where("students.department = ?", scope.Department)
	case auth.ScopeCompany:
		return q.Where("EXISTS (SELECT 1 FROM internships i WHERE i.student_id = students.id AND i.company_id = ?)", scope.CompanyID)
	case auth.ScopeSelf:
		return q.Where("students.user_id = ?", scope.UserID)
	default:
		return q
	}
}

func (r *StudentRepository) List(ctx context.Context, scope auth.Scope, filter student.ListFilter) ([]*studentDatamodel.Student, error) {
	var students []*studentDatamodel.Student
	q := scoped(r.db.WithContext(ctx).Model(&studentDatamodel.Student{}), scope).
		Where("students.is_active = ?", true)
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("(LOWER(students.name) LIKE ? OR LOWER(students.student_number) LIKE ?)", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Order("students.name ASC").Find(&students).Error
	return students, err
}

func (r *StudentRepository) GetByID(ctx context.Context, scope auth.Scope, id int64) (*studentDatamodel.Student, error) {
	var s studentDatamodel.Student
	err := scoped(r.db.WithContext(ctx).Model(&studentDatamodel.Student{}), scope).
		Where("students.id = ?", id).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) GetByStudentNumber(ctx context.Context, number string) (*studentDatamodel.Student, error) {
	var s studentDatamodel.Student
	err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *studentDatamodel.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StudentRepository) Update(ctx context.Context, s *studentDatamodel.Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&studentDatamodel.Student{}).Where("id = ?", id).Update("is_active", false).Error
}
