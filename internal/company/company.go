package company

import (
	"time"

	"github.com/frahmantamala/internship-management/internal"
	companyDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/company"
)

type Company struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrCompanyNotFound = internal.NewNotFoundError("company not found", internal.ErrCodeCompanyNotFound)
	ErrDuplicateName   = internal.NewConflictError("a company with this name already exists", internal.ErrCodeDuplicateCompany)
)

func (c *Company) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:            c.ID,
		Name:          c.Name,
		Industry:      c.Industry,
		Address:       c.Address,
		City:          c.City,
		ContactPerson: c.ContactPerson,
		ContactEmail:  c.ContactEmail,
		ContactPhone:  c.ContactPhone,
		Website:       c.Website,
		Description:   c.Description,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:            c.ID,
		Name:          c.Name,
		Industry:      c.Industry,
		Address:       c.Address,
		City:          c.City,
		ContactPerson: c.ContactPerson,
		ContactEmail:  c.ContactEmail,
		ContactPhone:  c.ContactPhone,
		Website:       c.Website,
		Description:   c.Description,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
