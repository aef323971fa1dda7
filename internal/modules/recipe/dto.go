package recipe

import (
	"time"

	"recipemarket/internal/domain"
)

type CreateRecipeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	Ingredients string `json:"ingredients,omitempty" validate:"max=10000"`
	Steps       string `json:"steps,omitempty" validate:"max=20000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

// UpdateRecipeRequest: nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Ingredients *string `json:"ingredients,omitempty" validate:"omitempty,max=10000"`
	Steps       *string `json:"steps,omitempty" validate:"omitempty,max=20000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

type RecipeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	ImageURL    *string   `json:"image_url"`
	CreatorID   int64     `json:"creator_id"`
	CreatorName *string   `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecipeListResponse struct {
	Recipes    []RecipeResponse `json:"recipes"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

func ToRecipeResponse(r *domain.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		CreatorID:   r.ClientID,
		CreatedAt:   r.CreatedAt,
	}
	if r.ImageURL != "" {
		url := r.ImageURL
		resp.ImageURL = &url
	}
	if r.Client != nil {
		name := r.Client.Name
		resp.CreatorName = &name
	}
	return resp
}

func ToRecipeList(recipes []domain.Recipe) []RecipeResponse {
	items := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		items[i] = ToRecipeResponse(&recipes[i])
	}
	return items
}
