package service

import (
	"context"
	"fmt"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
)

// withOwners attaches each recipe's author, loading all authors in one query.
func withOwners(ctx context.Context, repo *repository.Repository, recipes []models.Recipe) ([]models.RecipeWithOwner, error) {
	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.OwnerID)
	}
	owners, err := repo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.RecipeWithOwner, 0, len(recipes))
	for _, r := range recipes {
		owner, ok := owners[r.OwnerID]
		if !ok {
			return nil, fmt.Errorf("owner %d of recipe %d not found", r.OwnerID, r.ID)
		}
		result = append(result, models.RecipeWithOwner{
			Recipe: r,
			Owner:  owner.Summary(),
		})
	}
	return result, nil
}

func cookbooksWithOwners(ctx context.Context, repo *repository.Repository, cookbooks []models.Cookbook) ([]models.CookbookWithOwner, error) {
	ids := make([]uint, 0, len(cookbooks))
	for _, c := range cookbooks {
		ids = append(ids, c.OwnerID)
	}
	owners, err := repo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.CookbookWithOwner, 0, len(cookbooks))
	for _, c := range cookbooks {
		owner, ok := owners[c.OwnerID]
		if !ok {
			return nil, fmt.Errorf("owner %d of cookbook %d not found", c.OwnerID, c.ID)
		}
		result = append(result, models.CookbookWithOwner{
			Cookbook: c,
			Owner:    owner.Summary(),
		})
	}
	return result, nil
}

// loadRecipe returns a single recipe with its author.
func loadRecipe(ctx context.Context, repo *repository.Repository, id uint) (*models.RecipeWithOwner, error) {
	recipe, err := repo.FindRecipe(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "recipe", id)
	}
	hydrated, err := withOwners(ctx, repo, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}

// loadCookbook returns a cookbook with its author and its members, each
// member carrying its own author.
func loadCookbook(ctx context.Context, repo *repository.Repository, id uint) (*models.CookbookWithOwner, error) {
	cookbook, err := repo.FindCookbook(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "cookbook", id)
	}
	hydrated, err := cookbooksWithOwners(ctx, repo, []models.Cookbook{*cookbook})
	if err != nil {
		return nil, err
	}
	result := hydrated[0]

	members, err := repo.FindRecipesByCookbook(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Recipes, err = withOwners(ctx, repo, members)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
