package auth

import (
	"context"

	"recipemarket/internal/domain"
)

// AccountRepositoryInterface: only the methods auth service uses
type AccountRepositoryInterface interface {
	RegisterClient(ctx context.Context, acc *domain.Account, c *domain.Client) error
	RegisterCompany(ctx context.Context, acc *domain.Account, c *domain.Company) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
	GetCompanyByID(ctx context.Context, id int64) (*domain.Company, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
