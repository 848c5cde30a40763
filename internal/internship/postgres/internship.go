package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/internship-management/internal/auth"
	internshipDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/internship"
	"github.com/frahmantamala/internship-management/internal/internship"
)

type InternshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) internship.RepositoryAPI {
	return &InternshipRepository{db: db}
}

// scoped narrows q to the internships reachable through scope. Department and
// self scopes follow the internship's student.
func scoped(q *gorm.DB, scope auth.Scope) *gorm.DB {
	if scope.Empty() {
		return q.Where("1 = 0")
	}
	switch scope.Kind {
	case auth.ScopeDepartment:
		return q.Where("EXISTS (SELECT 1 FROM students s WHERE s.id = internships.student_id AND s.department = ?)", scope.Department)
	case auth.ScopeCompany:
		return q.Where("internships.company_id = ?", scope.CompanyID)
	case auth.ScopeSelf:
		return q.Where("EXISTS (SELECT 1 FROM students s WHERE s.id = internships.student_id AND s.user_id = ?)", scope.UserID)
	default:
		return q
	}
}

func (r *InternshipRepository) List(ctx context.Context, scope auth.Scope, filter internship.ListFilter) ([]*internshipDatamodel.Internship, error) {
	var internships []*internshipDatamodel.Internship
	q := scoped(r.db.WithContext(ctx).Model(&internshipDatamodel.Internship{}), scope)
	if filter.Status != "" {
		q = q.Where("internships.status = ?", string(filter.Status))
	}
	if filter.StudentID > 0 {
		q = q.Where("internships.student_id = ?", filter.StudentID)
	}
	if filter.CompanyID > 0 {
		q = q.Where("internships.company_id = ?", filter.CompanyID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Order("internships.created_at DESC, internships.id DESC").Find(&internships).Error
	return internships, err
}

func (r *InternshipRepository) GetByID(ctx context.Context, scope auth.Scope, id int64) (*internshipDatamodel.Internship, error) {
	var i internshipDatamodel.Internship
	err := scoped(r.db.WithContext(ctx).Model(&internshipDatamodel.Internship{}), scope).
		Where("internships.id = ?", id).
		First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *InternshipRepository) Create(ctx context.Context, i *internshipDatamodel.Internship) error {
	return r.db.WithContext(ctx).Create(i).Error
}

// UpdateStatus only touches the row while it is still in the from status, so
// two concurrent reviews cannot both succeed.
func (r *InternshipRepository) UpdateStatus(ctx context.Context, id int64, from, to internship.Status, reviewerID int64, note string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": at,
	}
	if to == internship.StatusApproved || to == internship.StatusRejected {
		updates["reviewed_by"] = reviewerID
		updates["reviewed_at"] = at
		updates["review_note"] = note
	}

	res := r.db.WithContext(ctx).Model(&internshipDatamodel.Internship{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&internshipDatamodel.Internship{}, id).Error
}
