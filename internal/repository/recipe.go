package repository

import (
	"context"
	"fmt"

	"github.com/recetario/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter narrows ListRecipes. Nil fields do not filter.
type RecipeFilter struct {
	Page
	Country *string
	Type    *string
	OwnerID *uint
}

func (r *Repository) FindRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.conn(ctx).First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	page := filter.Page.Normalize()
	query := r.conn(ctx).Model(&models.Recipe{})
	if filter.Country != nil {
		query = query.Where("country = ?", *filter.Country)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var recipes []models.Recipe
	if err := query.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipesByIDsForOwner returns the subset of ids that exist and belong to ownerID.
func (r *Repository) FindRecipesByIDsForOwner(ctx context.Context, ids []uint, ownerID uint) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}
	var recipes []models.Recipe
	err := r.conn(ctx).
		Where("id IN ? AND owner_id = ?", ids, ownerID).
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipesByCookbook returns the members of a cookbook ordered by id.
func (r *Repository) FindRecipesByCookbook(ctx context.Context, cookbookID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.conn(ctx).
		Where("cookbook_id = ?", cookbookID).
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cookbook recipes: %w", err)
	}
	return recipes, nil
}

func (r *Repository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := r.conn(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// UpdateRecipeFields applies a column map, so nil values are written as NULL.
func (r *Repository) UpdateRecipeFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.conn(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", res.Error)
	}
	return nil
}

func (r *Repository) DeleteRecipe(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignRecipesToCookbook sets cookbook_id on every given recipe.
func (r *Repository) AssignRecipesToCookbook(ctx context.Context, ids []uint, cookbookID uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.conn(ctx).Model(&models.Recipe{}).
		Where("id IN ?", ids).
		Update("cookbook_id", cookbookID).Error
	if err != nil {
		return fmt.Errorf("failed to assign recipes: %w", err)
	}
	return nil
}

// DetachRecipesFromCookbook clears cookbook_id on the cookbook's members,
// except those listed in keep.
func (r *Repository) DetachRecipesFromCookbook(ctx context.Context, cookbookID uint, keep []uint) error {
	query := r.conn(ctx).Model(&models.Recipe{}).Where("cookbook_id = ?", cookbookID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Update("cookbook_id", gorm.Expr("NULL")).Error; err != nil {
		return fmt.Errorf("failed to detach recipes: %w", err)
	}
	return nil
}

// DistinctCountries lists every non-empty country in alphabetical order.
func (r *Repository) DistinctCountries(ctx context.Context) ([]string, error) {
	countries := []string{}
	err := r.conn(ctx).Model(&models.Recipe{}).
		Where("country IS NOT NULL AND country <> ''").
		Distinct("country").
		Order("country ASC").
		Pluck("country", &countries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (r *Repository) SetRecipePDFURL(ctx context.Context, id uint, url string) error {
	return r.UpdateRecipeFields(ctx, id, map[string]interface{}{"pdf_url": url})
}
