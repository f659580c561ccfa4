package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	repo   *repository.Repository
	cache  CountryCache
	logger *slog.Logger
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. cache may be nil.
func NewRecipeService(repo *repository.Repository, cache CountryCache, logger *slog.Logger) *RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		repo:   repo,
		cache:  cache,
		logger: logger.With("component", "recipes"),
	}
}

// CreateRecipe stores a recipe owned by ownerID. When a cookbook is named it
// must exist and belong to the caller.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uint, req *types.CreateRecipeRequest) (*models.RecipeWithOwner, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.CookbookID != nil {
		if err := s.checkCookbookOwner(ctx, *req.CookbookID, ownerID); err != nil {
			return nil, err
		}
	}

	recipe := &models.Recipe{
		Title:                  req.Title,
		Ingredients:            models.Ingredients(req.Ingredients),
		Instructions:           req.Instructions,
		InstructionsFormat:     req.InstructionsFormat,
		Country:                req.Country,
		Type:                   req.Type,
		ImageURL:               req.ImageURL,
		PreparationTimeMinutes: req.PreparationTimeMinutes,
		Difficulty:             req.Difficulty,
		Notes:                  req.Notes,
		OwnerID:                ownerID,
		CookbookID:             req.CookbookID,
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.Ingredients{}
	}
	if recipe.InstructionsFormat == "" {
		recipe.InstructionsFormat = models.InstructionsNumbered
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DefaultDifficulty
	}

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	s.invalidateCountries(ctx)

	s.logger.InfoContext(ctx, "recipe created", "recipe_id", recipe.ID, "owner_id", ownerID)
	return loadRecipe(ctx, s.repo, recipe.ID)
}

// GetRecipe retrieves a recipe by ID with its author
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.RecipeWithOwner, error) {
	return loadRecipe(ctx, s.repo, id)
}

// UpdateRecipe applies the fields present in patch. Only the owner may
// update; the owner itself never changes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id uint, patch *types.UpdateRecipeRequest) (*models.RecipeWithOwner, error) {
	recipe, err := s.repo.FindRecipe(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "recipe", id)
	}
	if recipe.OwnerID != callerID {
		return nil, fmt.Errorf("%w: recipe %d belongs to another user", ErrForbidden, id)
	}
	if patch.CookbookID.HasValue() {
		if err := s.checkCookbookOwner(ctx, patch.CookbookID.Value, callerID); err != nil {
			return nil, err
		}
	}

	fields, err := recipeFields(patch)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRecipeFields(ctx, id, fields); err != nil {
		return nil, err
	}
	if _, ok := fields["country"]; ok {
		s.invalidateCountries(ctx)
	}
	return loadRecipe(ctx, s.repo, id)
}

// recipeFields turns a patch into a column map. Required columns reject null.
func recipeFields(patch *types.UpdateRecipeRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if patch.Title.Set {
		if !patch.Title.HasValue() || strings.TrimSpace(patch.Title.Value) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		fields["title"] = patch.Title.Value
	}
	if patch.Ingredients.Set {
		ingredients := models.Ingredients(patch.Ingredients.Value)
		if ingredients == nil {
			ingredients = models.Ingredients{}
		}
		fields["ingredients"] = ingredients
	}
	if patch.Instructions.Set {
		if !patch.Instructions.HasValue() {
			return nil, fmt.Errorf("%w: instructions cannot be null", ErrValidation)
		}
		fields["instructions"] = patch.Instructions.Value
	}
	if patch.InstructionsFormat.Set {
		switch patch.InstructionsFormat.Value {
		case models.InstructionsNumbered, models.InstructionsPlain:
			fields["instructions_format"] = patch.InstructionsFormat.Value
		default:
			return nil, fmt.Errorf("%w: instructions_format must be numbered or plain", ErrValidation)
		}
	}
	if patch.PreparationTimeMinutes.Set {
		if patch.PreparationTimeMinutes.Value < 0 {
			return nil, fmt.Errorf("%w: preparation_time_minutes cannot be negative", ErrValidation)
		}
		fields["preparation_time_minutes"] = patch.PreparationTimeMinutes.Value
	}
	if patch.Difficulty.Set {
		if !patch.Difficulty.HasValue() || patch.Difficulty.Value == "" {
			fields["difficulty"] = models.DefaultDifficulty
		} else {
			fields["difficulty"] = patch.Difficulty.Value
		}
	}
	if patch.Country.Set {
		fields["country"] = patch.Country.Ptr()
	}
	if patch.Type.Set {
		fields["type"] = patch.Type.Ptr()
	}
	if patch.ImageURL.Set {
		fields["image_url"] = patch.ImageURL.Ptr()
	}
	if patch.Notes.Set {
		fields["notes"] = patch.Notes.Ptr()
	}
	if patch.CookbookID.Set {
		fields["cookbook_id"] = patch.CookbookID.Ptr()
	}
	return fields, nil
}

// DeleteRecipe removes a recipe and its ratings. Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id uint) error {
	recipe, err := s.repo.FindRecipe(ctx, id)
	if err != nil {
		return notFoundOr(err, "recipe", id)
	}
	if recipe.OwnerID != callerID {
		return fmt.Errorf("%w: recipe %d belongs to another user", ErrForbidden, id)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.DeleteRatings(ctx, repository.RecipeTarget(id)); err != nil {
			return err
		}
		return tx.DeleteRecipe(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "recipe", id)
	}
	s.invalidateCountries(ctx)

	s.logger.InfoContext(ctx, "recipe deleted", "recipe_id", id, "owner_id", callerID)
	return nil
}

// ListRecipes returns a window of recipes, each with its author
func (s *RecipeService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]models.RecipeWithOwner, error) {
	recipes, err := s.repo.ListRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}
	return withOwners(ctx, s.repo, recipes)
}

// ListUniqueCountries serves from the cache when possible. Cache errors are
// logged and never fail the request.
func (s *RecipeService) ListUniqueCountries(ctx context.Context) ([]string, error) {
	var generation int64
	cacheReadable := false
	if s.cache != nil {
		countries, gen, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "countries cache read failed", "error", err)
		case ok:
			return countries, nil
		default:
			generation, cacheReadable = gen, true
		}
	}

	countries, err := s.repo.DistinctCountries(ctx)
	if err != nil {
		return nil, err
	}

	// Only repopulate when the generation is known; Set refuses stale writes.
	if cacheReadable {
		if err := s.cache.Set(ctx, countries, generation); err != nil {
			s.logger.WarnContext(ctx, "countries cache write failed", "error", err)
		}
	}
	return countries, nil
}

func (s *RecipeService) checkCookbookOwner(ctx context.Context, cookbookID, callerID uint) error {
	cookbook, err := s.repo.FindCookbook(ctx, cookbookID)
	if err != nil {
		return notFoundOr(err, "cookbook", cookbookID)
	}
	if cookbook.OwnerID != callerID {
		return fmt.Errorf("%w: cookbook %d belongs to another user", ErrForbidden, cookbookID)
	}
	return nil
}

func (s *RecipeService) invalidateCountries(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "countries cache invalidation failed", "error", err)
	}
}
