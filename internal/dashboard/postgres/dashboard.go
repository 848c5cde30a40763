package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/dashboard"
)

const (
	countStudentsQuery  = `SELECT COUNT(*) FROM students s WHERE s.is_active = TRUE`
	countCompaniesQuery = `SELECT COUNT(*) FROM companies WHERE is_active = TRUE`
	countByStatusQuery  = `SELECT i.status, COUNT(*) AS count FROM internships i WHERE TRUE`
	groupByStatus       = ` GROUP BY i.status ORDER BY i.status`
)

// StatsRepository computes dashboard aggregates with plain SQL.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) dashboard.RepositoryAPI {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountStudents(ctx context.Context, scope auth.Scope) (int, error) {
	filter, args := studentScope(scope)
	var n int
	err := r.db.GetContext(ctx, &n, countStudentsQuery+filter, args...)
	return n, err
}

func (r *StatsRepository) CountCompanies(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, countCompaniesQuery)
	return n, err
}

func (r *StatsRepository) CountInternshipsByStatus(ctx context.Context, scope auth.Scope) ([]dashboard.StatusCount, error) {
	filter, args := internshipScope(scope)
	var rows []dashboard.StatusCount
	err := r.db.SelectContext(ctx, &rows, countByStatusQuery+filter+groupByStatus, args...)
	return rows, err
}

func studentScope(scope auth.Scope) (string, []interface{}) {
	if scope.Empty() {
		return " AND FALSE", nil
	}
	switch scope.Kind {
	case auth.ScopeDepartment:
		return " AND s.department = $1", []interface{}{scope.Department}
	case auth.ScopeCompany:
		return " AND EXISTS (SELECT 1 FROM internships i WHERE i.student_id = s.id AND i.company_id = $1)", []interface{}{scope.CompanyID}
	case auth.ScopeSelf:
		return " AND s.user_id = $1", []interface{}{scope.UserID}
	default:
		return "", nil
	}
}

func internshipScope(scope auth.Scope) (string, []interface{}) {
	if scope.Empty() {
		return " AND FALSE", nil
	}
	switch scope.Kind {
	case auth.ScopeDepartment:
		return " AND EXISTS (SELECT 1 FROM students s WHERE s.id = i.student_id AND s.department = $1)", []interface{}{scope.Department}
	case auth.ScopeCompany:
		return " AND i.company_id = $1", []interface{}{scope.CompanyID}
	case auth.ScopeSelf:
		return " AND EXISTS (SELECT 1 FROM students s WHERE s.id = i.student_id AND s.user_id = $1)", []interface{}{scope.UserID}
	default:
		return "", nil
	}
}
