package company

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/core/common/validation"
	companyDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/company"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*companyDatamodel.Company, error)
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
	GetByName(ctx context.Context, name string) (*companyDatamodel.Company, error)
	Create(ctx context.Context, company *companyDatamodel.Company) error
	Update(ctx context.Context, company *companyDatamodel.Company) error
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

// List returns active companies. Companies are not row scoped: every role
// allowed to view companies sees the same list.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Company, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, internal.NewInternalError("failed to list companies", err)
	}

	companies := make([]*Company, 0, len(rows))
	for _, row := range rows {
		companies = append(companies, FromDataModel(row))
	}
	return companies, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Company, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get company", "company_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get company", err)
	}
	if row == nil || !row.IsActive {
		return nil, ErrCompanyNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateCompanyDTO) (*Company, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, dto.Name, 0); err != nil {
		return nil, err
	}

	row := &companyDatamodel.Company{
		Name:          dto.Name,
		Industry:      dto.Industry,
		Address:       dto.Address,
		City:          dto.City,
		ContactPerson: dto.ContactPerson,
		ContactEmail:  strings.ToLower(strings.TrimSpace(dto.ContactEmail)),
		ContactPhone:  dto.ContactPhone,
		Website:       dto.Website,
		Description:   dto.Description,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create company", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create company", err)
	}

	s.logger.Info("company created", "company_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateCompanyDTO) (*Company, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name != current.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		current.Name = name
	}
	apply(&current.Industry, dto.Industry)
	apply(&current.Address, dto.Address)
	apply(&current.City, dto.City)
	apply(&current.ContactPerson, dto.ContactPerson)
	apply(&current.ContactEmail, dto.ContactEmail)
	apply(&current.ContactPhone, dto.ContactPhone)
	apply(&current.Website, dto.Website)
	apply(&current.Description, dto.Description)

	row := ToDataModel(current)
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update company", "company_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update company", err)
	}
	return FromDataModel(row), nil
}

// Delete deactivates the company; rows referencing it are kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("failed to deactivate company", "company_id", id, "error", err)
		return internal.NewInternalError("failed to delete company", err)
	}
	s.logger.Info("company deactivated", "company_id", id)
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return internal.NewInternalError("failed to check company name", err)
	}
	if existing != nil && existing.ID != selfID {
		return ErrDuplicateName
	}
	return nil
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
