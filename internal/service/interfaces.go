package service

import (
	"context"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/types"
)

// IAuthService defines the interface for account operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, ownerID uint, req *types.CreateRecipeRequest) (*models.RecipeWithOwner, error)
	GetRecipe(ctx context.Context, id uint) (*models.RecipeWithOwner, error)
	UpdateRecipe(ctx context.Context, callerID, id uint, patch *types.UpdateRecipeRequest) (*models.RecipeWithOwner, error)
	DeleteRecipe(ctx context.Context, callerID, id uint) error
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]models.RecipeWithOwner, error)
	ListUniqueCountries(ctx context.Context) ([]string, error)
}

// ICookbookService defines the interface for cookbook operations
type ICookbookService interface {
	CreateCookbook(ctx context.Context, ownerID uint, req *types.CreateCookbookRequest) (*models.CookbookWithOwner, error)
	GetCookbook(ctx context.Context, id uint) (*models.CookbookWithOwner, error)
	UpdateCookbook(ctx context.Context, callerID, id uint, patch *types.UpdateCookbookRequest) (*models.CookbookWithOwner, error)
	DeleteCookbook(ctx context.Context, callerID, id uint) error
	ListCookbooks(ctx context.Context, filter repository.CookbookFilter) ([]models.CookbookWithOwner, error)
}

// IRatingService defines the interface for rating operations
type IRatingService interface {
	RateRecipe(ctx context.Context, userID, recipeID uint, score int) (*models.Rating, error)
	RateCookbook(ctx context.Context, userID, cookbookID uint, score int) (*models.Rating, error)
	RecipeRatings(ctx context.Context, recipeID uint) (*models.RatingSummary, error)
	CookbookRatings(ctx context.Context, cookbookID uint) (*models.RatingSummary, error)
}

// IExportService defines the interface for PDF export operations
type IExportService interface {
	ExportRecipe(ctx context.Context, recipeID uint) (string, error)
	ExportCookbook(ctx context.Context, cookbookID uint) (string, error)
	RenderRecipe(ctx context.Context, recipeID uint) ([]byte, string, error)
}

// IUploadService defines the interface for image uploads
type IUploadService interface {
	UploadImage(ctx context.Context, data []byte, filename, contentType string) (string, error)
}
