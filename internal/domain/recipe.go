package domain

import "time"

// Recipe is created by a client; the creator reference never changes.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	ClientID    int64     `json:"client_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:150;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Ingredients string    `json:"ingredients,omitempty" gorm:"type:text"`
	Steps       string    `json:"steps,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`

	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}

func (Recipe) TableName() string { return "recipes" }

var (
	ErrRecipeNotFound = NewError(ErrNotFound, "RECIPE_NOT_FOUND", "recipe not found")
	ErrRecipeInUse    = NewError(ErrConflict, "RECIPE_IN_USE", "recipe is referenced by offers or orders")
)
