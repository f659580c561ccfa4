package types

import "github.com/recetario/backend/internal/models"

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is accepted both as a form (OAuth2 password flow) and as JSON.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title                  string              `json:"title" binding:"required"`
	Ingredients            []models.Ingredient `json:"ingredients" binding:"required,dive"`
	Instructions           string              `json:"instructions" binding:"required"`
	InstructionsFormat     string              `json:"instructions_format" binding:"omitempty,instructions_format"`
	Country                *string             `json:"country"`
	Type                   *string             `json:"type"`
	ImageURL               *string             `json:"image_url"`
	CookbookID             *uint               `json:"cookbook_id"`
	PreparationTimeMinutes int                 `json:"preparation_time_minutes" binding:"gte=0"`
	Difficulty             string              `json:"difficulty"`
	Notes                  *string             `json:"notes"`
}

// UpdateRecipeRequest only touches the fields present in the body.
// A null cookbook_id takes the recipe out of its cookbook.
type UpdateRecipeRequest struct {
	Title                  Optional[string]              `json:"title"`
	Ingredients            Optional[[]models.Ingredient] `json:"ingredients"`
	Instructions           Optional[string]              `json:"instructions"`
	InstructionsFormat     Optional[string]              `json:"instructions_format"`
	Country                Optional[string]              `json:"country"`
	Type                   Optional[string]              `json:"type"`
	ImageURL               Optional[string]              `json:"image_url"`
	CookbookID             Optional[uint]                `json:"cookbook_id"`
	PreparationTimeMinutes Optional[int]                 `json:"preparation_time_minutes"`
	Difficulty             Optional[string]              `json:"difficulty"`
	Notes                  Optional[string]              `json:"notes"`
}

// CreateCookbookRequest represents the request body for creating a cookbook
type CreateCookbookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	RecipeIDs   []uint  `json:"recipe_ids"`
}

// UpdateCookbookRequest replaces the membership whenever recipe_ids is present,
// even as an empty list. When it is absent the members stay as they are.
type UpdateCookbookRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	RecipeIDs   Optional[[]uint] `json:"recipe_ids"`
}

type RateRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

type URLResponse struct {
	URL string `json:"url"`
}
