package student

type CreateStudentDTO struct {
	UserID        *int64 `json:"user_id" validate:"omitempty,min=1"`
	StudentNumber string `json:"student_number" validate:"required,min=3,max=30"`
	Name          string `json:"name" validate:"required,min=2,max=150"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Department    string `json:"department" validate:"required,max=100"`
	Program       string `json:"program" validate:"max=100"`
	Year          int    `json:"year" validate:"omitempty,min=1,max=10"`
	Phone         string `json:"phone" validate:"max=30"`
}

// UpdateStudentDTO holds the fields to change; nil fields are left as is.
// The student number and department are fixed after creation.
type UpdateStudentDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=150"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Program *string `json:"program" validate:"omitempty,max=100"`
	Year    *int    `json:"year" validate:"omitempty,min=1,max=10"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type StudentsResponse struct {
	Students []*Student `json:"students"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
