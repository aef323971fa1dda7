package favorite

import (
	"time"

	"recipemarket/internal/domain"
)

// ToggleFavoriteRequest: тело запроса на переключение избранного
type ToggleFavoriteRequest struct {
	RecipeID int64 `json:"recipeId" validate:"required,gt=0"`
}

// FavoriteResponse: ответ с информацией об избранном
type FavoriteResponse struct {
	RecipeID  int64        `json:"recipe_id"`
	Recipe    *RecipeBrief `json:"recipe"`
	CreatedAt time.Time    `json:"created_at"`
}

// RecipeBrief: краткая информация о рецепте для списка избранного
type RecipeBrief struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ImageURL  *string `json:"image_url"`
	CreatorID int64   `json:"creator_id"`
}

// FavoriteListResponse: ответ со списком избранного
type FavoriteListResponse struct {
	Favorites  []FavoriteResponse `json:"favorites"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

// CheckFavoriteResponse: ответ на проверку "в избранном ли"
type CheckFavoriteResponse struct {
	RecipeID   int64 `json:"recipe_id"`
	IsFavorite bool  `json:"is_favorite"`
}

// ToFavoriteResponse конвертирует domain.Favorite в API response
func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		RecipeID:  f.RecipeID,
		CreatedAt: f.CreatedAt,
	}

	if f.Recipe != nil {
		brief := &RecipeBrief{
			ID:        f.Recipe.ID,
			Name:      f.Recipe.Name,
			CreatorID: f.Recipe.ClientID,
		}
		if f.Recipe.ImageURL != "" {
			url := f.Recipe.ImageURL
			brief.ImageURL = &url
		}
		resp.Recipe = brief
	}

	return resp
}

// ToFavoriteListResponse конвертирует slice favorites в paginated response
func ToFavoriteListResponse(favorites []domain.Favorite, total int64, page, perPage, totalPages int) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		items[i] = ToFavoriteResponse(&favorites[i])
	}

	return FavoriteListResponse{
		Favorites:  items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
