package repository

import (
	"context"

	"recipemarket/internal/domain"

	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithContext(ctx).Omit("Client").Create(recipe).Error
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := r.db.WithContext(ctx).Preload("Client").First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// List returns one page of recipes, newest first, and the total count.
func (r *RecipeRepository) List(ctx context.Context, limit, offset int) ([]domain.Recipe, int64, error) {
	var (
		recipes []domain.Recipe
		total   int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Preload("Client").Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *RecipeRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("client_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	return recipes, err
}

func (r *RecipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the editable fields. The creator is part of the WHERE clause
// and never part of the SET list.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ? AND client_id = ?", recipe.ID, recipe.ClientID).
		Updates(map[string]interface{}{
			"name":        recipe.Name,
			"description": recipe.Description,
			"ingredients": recipe.Ingredients,
			"steps":       recipe.Steps,
			"image_url":   recipe.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	return nil
}

// Delete removes the recipe and the favorites pointing at it. Recipes that
// any offer or order references are kept and ErrInUse is returned.
func (r *RecipeRepository) Delete(ctx context.Context, id, clientID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.OfferOrder{}).Where("recipe_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrInUse
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND client_id = ?", id, clientID).Delete(&domain.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleWrite
		}
		return nil
	})
}
