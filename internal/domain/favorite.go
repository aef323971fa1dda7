package domain

import (
	"time"
)

// Favorite marks a recipe as favorited by a client. The row itself is the
// fact; the (client, recipe) pair is the primary key.
type Favorite struct {
	ClientID  int64     `json:"client_id" gorm:"primaryKey;autoIncrement:false"`
	RecipeID  int64     `json:"recipe_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Virtual field for preload
	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

// TableName возвращает имя таблицы в БД
func (Favorite) TableName() string {
	return "favorites"
}
