package favorite

import (
	"context"
	"errors"

	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/metrics"
	"recipemarket/internal/repository"
)

var ErrToggleConflict = domain.NewError(domain.ErrConflict, "FAVORITE_CONFLICT", "favorite was changed concurrently, retry")

// Service: избранные рецепты клиента
type Service struct {
	repo repository.FavoriteRepository
}

func NewService(repo repository.FavoriteRepository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the favorite flag of a recipe for the calling client and
// reports whether the recipe is now a favorite.
func (s *Service) Toggle(ctx context.Context, p domain.Principal, recipeID int64) (bool, error) {
	if !p.Is(domain.RoleClient) {
		return false, domain.ErrForbidden
	}

	added, err := s.repo.Toggle(ctx, p.SubjectID, recipeID)
	if err != nil {
		metrics.RecordFavoriteToggle("error")
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return false, domain.ErrRecipeNotFound
		case errors.Is(err, domain.ErrConflict):
			return false, ErrToggleConflict
		}
		return false, err
	}

	if added {
		metrics.RecordFavoriteToggle("added")
	} else {
		metrics.RecordFavoriteToggle("removed")
	}
	return added, nil
}

func (s *Service) IsFavorite(ctx context.Context, p domain.Principal, recipeID int64) (bool, error) {
	if !p.Is(domain.RoleClient) {
		return false, domain.ErrForbidden
	}
	return s.repo.Exists(ctx, p.SubjectID, recipeID)
}

func (s *Service) List(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.Favorite, int64, error) {
	if !p.Is(domain.RoleClient) {
		return nil, 0, domain.ErrForbidden
	}
	return s.repo.GetByClientID(ctx, p.SubjectID, limit, offset)
}
