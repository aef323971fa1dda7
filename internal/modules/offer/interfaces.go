package offer

import (
	"context"
	"time"

	"recipemarket/internal/domain"
)

// OfferOrderRepositoryInterface: storage for the offer_orders rows
type OfferOrderRepositoryInterface interface {
	CreateOffer(ctx context.Context, row *domain.OfferOrder) error
	GetByID(ctx context.Context, id int64) (*domain.OfferOrder, error)
	ListAvailableByRecipe(ctx context.Context, recipeID int64) ([]domain.OfferOrder, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.OfferOrder, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.OfferOrder, error)
	Claim(ctx context.Context, id, clientID int64, at time.Time) (bool, error)
	Mutate(ctx context.Context, id int64, fn func(row *domain.OfferOrder) error) (*domain.OfferOrder, error)
	DeleteOffer(ctx context.Context, id int64, check func(row *domain.OfferOrder) error) error
}

// RecipeCheckerInterface: existence check for public recipe listings
type RecipeCheckerInterface interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
