package models

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating targets exactly one of a recipe or a cookbook.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Score      int       `gorm:"not null" json:"score"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	RecipeID   *uint     `gorm:"index" json:"recipe_id"`
	CookbookID *uint     `gorm:"index" json:"cookbook_id"`
}

type RatingSummary struct {
	Count   int      `json:"count"`
	Average float64  `json:"average"`
	Ratings []Rating `json:"ratings"`
}

// All lists every model managed by the schema, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Cookbook{},
		&Recipe{},
		&Rating{},
	}
}
