package student

import (
	"time"

	"github.com/frahmantamala/internship-management/internal"
	studentDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/student"
)

type Student struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id,omitempty"`
	StudentNumber string    `json:"student_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Department    string    `json:"department"`
	Program       string    `json:"program,omitempty"`
	Year          int       `json:"year,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrStudentNotFound        = internal.NewNotFoundError("student not found", internal.ErrCodeStudentNotFound)
	ErrDuplicateStudentNumber = internal.NewConflictError("a student with this number already exists", internal.ErrCodeDuplicateStudentNumber)
)

func ToDataModel(s *Student) *studentDatamodel.Student {
	return &studentDatamodel.Student{
		ID:            s.ID,
		UserID:        s.UserID,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Email:         s.Email,
		Department:    s.Department,
		Program:       s.Program,
		Year:          s.Year,
		Phone:         s.Phone,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func FromDataModel(s *studentDatamodel.Student) *Student {
	return &Student{
		ID:            s.ID,
		UserID:        s.UserID,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Email:         s.Email,
		Department:    s.Department,
		Program:       s.Program,
		Year:          s.Year,
		Phone:         s.Phone,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*studentDatamodel.Student) []*Student {
	result := make([]*Student, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
