package recipe

import (
	"context"
	"errors"
	"strings"

	"recipemarket/internal/domain"
	"recipemarket/internal/repository"
)

type Service struct {
	recipes RecipeRepositoryInterface
}

func NewService(recipes RecipeRepositoryInterface) *Service {
	return &Service{recipes: recipes}
}

// Create stores a recipe owned by the calling client.
func (s *Service) Create(ctx context.Context, p domain.Principal, req CreateRecipeRequest) (*domain.Recipe, error) {
	if !p.Is(domain.RoleClient) {
		return nil, domain.ErrForbidden
	}

	r := &domain.Recipe{
		ClientID:    p.SubjectID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if r.Name == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "VALIDATION_ERROR", "name is required")
	}
	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, r.ID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Recipe, int64, error) {
	return s.recipes.List(ctx, limit, offset)
}

func (s *Service) ListMine(ctx context.Context, p domain.Principal) ([]domain.Recipe, error) {
	if !p.Is(domain.RoleClient) {
		return nil, domain.ErrForbidden
	}
	return s.recipes.ListByClient(ctx, p.SubjectID)
}

// Update changes the editable fields. Only the creator may edit and the
// creator reference is never rewritten.
func (s *Service) Update(ctx context.Context, p domain.Principal, id int64, req UpdateRecipeRequest) (*domain.Recipe, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, r.ClientID, domain.RoleClient); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.NewError(domain.ErrInvalidInput, "VALIDATION_ERROR", "name must not be empty")
		}
		r.Name = name
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Ingredients != nil {
		r.Ingredients = *req.Ingredients
	}
	if req.Steps != nil {
		r.Steps = *req.Steps
	}
	if req.ImageURL != nil {
		r.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.recipes.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a recipe that no offer or order references.
func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, r.ClientID, domain.RoleClient); err != nil {
		return err
	}

	if err := s.recipes.Delete(ctx, id, r.ClientID); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return domain.ErrRecipeInUse
		}
		return err
	}
	return nil
}
