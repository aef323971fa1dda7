package repository

import (
	"context"

	"recipemarket/internal/domain"

	"gorm.io/gorm"
)

// toggleAttempts bounds Toggle: the first attempt plus one retry after a
// concurrent insert of the same pair.
const toggleAttempts = 2

// FavoriteRepository определяет методы для работы с избранным
type FavoriteRepository interface {
	Toggle(ctx context.Context, clientID, recipeID int64) (added bool, err error)
	GetByClientID(ctx context.Context, clientID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(ctx context.Context, clientID, recipeID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle flips the (client, recipe) pair: an existing row is deleted,
// otherwise one is inserted. It reports whether the pair is now present.
// A duplicate-key insert means another toggle won the race; the toggle is
// re-run once, which then takes the delete branch.
func (r *favoriteRepository) Toggle(ctx context.Context, clientID, recipeID int64) (bool, error) {
	for attempt := 0; attempt < toggleAttempts; attempt++ {
		added, err := r.toggleOnce(ctx, clientID, recipeID)
		if err == nil {
			return added, nil
		}
		if !isUniqueViolation(err) {
			return false, err
		}
	}
	return false, ErrDuplicate
}

func (r *favoriteRepository) toggleOnce(ctx context.Context, clientID, recipeID int64) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("client_id = ? AND recipe_id = ?", clientID, recipeID).Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&domain.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Omit("Recipe").Create(&domain.Favorite{ClientID: clientID, RecipeID: recipeID}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// GetByClientID возвращает избранные рецепты клиента с пагинацией и общим количеством.
func (r *favoriteRepository) GetByClientID(ctx context.Context, clientID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var favorites []domain.Favorite
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Favorite{}).
		Where("client_id = ?", clientID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("client_id = ?", clientID).
		Preload("Recipe").
		Order("created_at DESC, recipe_id DESC") // Новые сверху

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, clientID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("client_id = ? AND recipe_id = ?", clientID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
