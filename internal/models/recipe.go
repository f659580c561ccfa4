package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	InstructionsNumbered = "numbered"
	InstructionsPlain    = "plain"

	DefaultDifficulty = "medium"
)

// Ingredient is a single entry of a recipe's ingredient list.
type Ingredient struct {
	Name   string  `json:"name" binding:"required"`
	Amount *string `json:"amount"`
	Unit   *string `json:"unit"`
}

// Ingredients is stored as a JSON array, preserving order.
type Ingredients []Ingredient

// Value implements the driver.Valuer interface
func (a Ingredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *Ingredients) Scan(value interface{}) error {
	if value == nil {
		*a = Ingredients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported ingredients column type %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// GormDataType reports the generic column type.
func (Ingredients) GormDataType() string {
	return "json"
}

// GormDBDataType picks jsonb on postgres and plain json elsewhere.
func (Ingredients) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}

type Recipe struct {
	ID                     uint        `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time   `json:"created_at"`
	Title                  string      `gorm:"size:255;not null;index" json:"title"`
	Ingredients            Ingredients `gorm:"not null" json:"ingredients"`
	Instructions           string      `gorm:"type:text;not null" json:"instructions"`
	InstructionsFormat     string      `gorm:"size:16;not null;default:'numbered'" json:"instructions_format"`
	Country                *string     `gorm:"size:100;index" json:"country"`
	Type                   *string     `gorm:"size:100;index" json:"type"`
	ImageURL               *string     `gorm:"size:512" json:"image_url"`
	PreparationTimeMinutes int         `gorm:"not null;default:0" json:"preparation_time_minutes"`
	Difficulty             string      `gorm:"size:32;not null;default:'medium'" json:"difficulty"`
	Notes                  *string     `gorm:"type:text" json:"notes"`
	PDFURL                 *string     `gorm:"column:pdf_url;size:512" json:"pdf_url,omitempty"`
	OwnerID                uint        `gorm:"not null;index" json:"owner_id"`
	CookbookID             *uint       `gorm:"index" json:"cookbook_id"`
}

// RecipeWithOwner is a recipe hydrated with its author's public profile.
type RecipeWithOwner struct {
	Recipe
	Owner UserSummary `json:"owner"`
}
