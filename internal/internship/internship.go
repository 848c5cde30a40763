package internship

import (
	"time"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	internshipDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/internship"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// transitions lists the statuses reachable from each status. Rejected and
// completed are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusRejected},
	StatusApproved:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionPermission is the permission a caller needs to move an
// internship into next. Reviews need approval rights, progress updates need
// edit rights.
func TransitionPermission(next Status) (auth.Permission, bool) {
	switch next {
	case StatusApproved, StatusRejected:
		return auth.CanApproveInternships, true
	case StatusInProgress, StatusCompleted:
		return auth.CanEditInternships, true
	default:
		return auth.Permission{}, false
	}
}

type Internship struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"student_id"`
	CompanyID    int64      `json:"company_id"`
	SupervisorID *int64     `json:"supervisor_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Status       Status     `json:"status"`
	ReviewNote   string     `json:"review_note,omitempty"`
	ReviewedBy   *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	ErrInternshipNotFound = internal.NewNotFoundError("internship not found", internal.ErrCodeInternshipNotFound)
	ErrInvalidTransition  = internal.NewConflictError("internship cannot move to the requested status", internal.ErrCodeInvalidStatusTransition)
)

func NewInternship(dto CreateInternshipDTO) *Internship {
	return &Internship{
		StudentID:    dto.StudentID,
		CompanyID:    dto.CompanyID,
		SupervisorID: dto.SupervisorID,
		Title:        dto.Title,
		Description:  dto.Description,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Status:       StatusPending,
	}
}

func ToDataModel(i *Internship) *internshipDatamodel.Internship {
	return &internshipDatamodel.Internship{
		ID:           i.ID,
		StudentID:    i.StudentID,
		CompanyID:    i.CompanyID,
		SupervisorID: i.SupervisorID,
		Title:        i.Title,
		Description:  i.Description,
		StartDate:    i.StartDate,
		EndDate:      i.EndDate,
		Status:       string(i.Status),
		ReviewNote:   i.ReviewNote,
		ReviewedBy:   i.ReviewedBy,
		ReviewedAt:   i.ReviewedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func FromDataModel(i *internshipDatamodel.Internship) *Internship {
	return &Internship{
		ID:           i.ID,
		StudentID:    i.StudentID,
		CompanyID:    i.CompanyID,
		SupervisorID: i.SupervisorID,
		Title:        i.Title,
		Description:  i.Description,
		StartDate:    i.StartDate,
		EndDate:      i.EndDate,
		Status:       Status(i.Status),
		ReviewNote:   i.ReviewNote,
		ReviewedBy:   i.ReviewedBy,
		ReviewedAt:   i.ReviewedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*internshipDatamodel.Internship) []*Internship {
	result := make([]*Internship, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
