package company

type CreateCompanyDTO struct {
	Name          string `json:"name" validate:"required,min=2,max=200"`
	Industry      string `json:"industry" validate:"max=100"`
	Address       string `json:"address" validate:"max=255"`
	City          string `json:"city" validate:"max=100"`
	ContactPerson string `json:"contact_person" validate:"max=150"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone  string `json:"contact_phone" validate:"max=30"`
	Website       string `json:"website" validate:"omitempty,url,max=255"`
	Description   string `json:"description" validate:"max=2000"`
}

// UpdateCompanyDTO holds the fields to change; nil fields are left as is.
type UpdateCompanyDTO struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=200"`
	Industry      *string `json:"industry" validate:"omitempty,max=100"`
	Address       *string `json:"address" validate:"omitempty,max=255"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=150"`
	ContactEmail  *string `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone  *string `json:"contact_phone" validate:"omitempty,max=30"`
	Website       *string `json:"website" validate:"omitempty,url,max=255"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type CompaniesResponse struct {
	Companies []*Company `json:"companies"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
