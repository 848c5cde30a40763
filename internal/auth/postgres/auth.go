package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/internship-management/internal/auth"
	userDatamodel "github.com/frahmantamala/internship-management/internal/core/datamodel/user"
)

// AccountRepository reads account records for login and identity resolution.
// It never caches: every call hits the database.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ auth.AccountStore = (*AccountRepository)(nil)

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*auth.Account, error) {
	var row userDatamodel.User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toAccount(&row), nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	var row userDatamodel.User
	if err := r.db.WithContext(ctx).First(&row, "email = ?", auth.NormalizeEmail(email)).Error; err != nil {
		return nil, translate(err)
	}
	return toAccount(&row), nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.ErrAccountNotFound
	}
	return err
}

func toAccount(u *userDatamodel.User) *auth.Account {
	return &auth.Account{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         auth.Role(u.Role),
		Department:   u.Department,
		CompanyID:    u.CompanyID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
