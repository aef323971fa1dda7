package recipe

import (
	"context"

	"recipemarket/internal/domain"
)

type RecipeRepositoryInterface interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]domain.Recipe, int64, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, id, clientID int64) error
}
