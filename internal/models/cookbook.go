package models

import "time"

// Cookbook holds no member list; members are the recipes whose
// cookbook_id points at it.
type Cookbook struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	PDFURL      *string   `gorm:"column:pdf_url;size:512" json:"pdf_url,omitempty"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
}

type CookbookWithOwner struct {
	Cookbook
	Owner   UserSummary       `json:"owner"`
	Recipes []RecipeWithOwner `json:"recipes,omitempty"`
}
