package internship

import "time"

type CreateInternshipDTO struct {
	StudentID    int64     `json:"student_id" validate:"required,min=1"`
	CompanyID    int64     `json:"company_id" validate:"required,min=1"`
	SupervisorID *int64    `json:"supervisor_id" validate:"omitempty,min=1"`
	Title        string    `json:"title" validate:"required,min=3,max=200"`
	Description  string    `json:"description" validate:"max=2000"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=approved rejected in_progress completed"`
	Note   string `json:"note" validate:"max=1000"`
}

type ListFilter struct {
	Status    Status
	StudentID int64
	CompanyID int64
	Limit     int
	Offset    int
}

type InternshipsResponse struct {
	Internships []*Internship `json:"internships"`
	Limit       int           `json:"limit"`
	Offset      int           `json:"offset"`
}
