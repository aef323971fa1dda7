package repository

import (
	"context"

	"recipemarket/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// RegisterClient stores the account and its client profile in one transaction.
// The email is checked against both the client and the company namespaces
// first; domain.ErrConflict is returned when it is taken in either.
func (r *AccountRepository) RegisterClient(ctx context.Context, acc *domain.Account, c *domain.Client) error {
	acc.Role = domain.RoleClient
	return r.register(ctx, acc, func(tx *gorm.DB) error {
		c.ID = acc.ID
		c.Email = acc.Email
		return tx.Create(c).Error
	})
}

// RegisterCompany is RegisterClient for companies.
func (r *AccountRepository) RegisterCompany(ctx context.Context, acc *domain.Account, c *domain.Company) error {
	acc.Role = domain.RoleCompany
	return r.register(ctx, acc, func(tx *gorm.DB) error {
		c.ID = acc.ID
		c.Email = acc.Email
		return tx.Create(c).Error
	})
}

func (r *AccountRepository) register(ctx context.Context, acc *domain.Account, createProfile func(tx *gorm.DB) error) error {
	acc.Email = domain.NormalizeEmail(acc.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, acc.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrConflict
		}
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		return createProfile(tx)
	})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// EmailTaken reports whether any client or company already uses email.
func (r *AccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return emailTaken(r.db.WithContext(ctx), domain.NormalizeEmail(email))
}

func emailTaken(tx *gorm.DB, email string) (bool, error) {
	for _, model := range []interface{}{&domain.Client{}, &domain.Company{}, &domain.Account{}} {
		var count int64
		if err := tx.Model(model).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		First(&acc).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *AccountRepository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *AccountRepository) GetCompanyByID(ctx context.Context, id int64) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}
