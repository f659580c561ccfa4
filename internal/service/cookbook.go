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

// CookbookService handles cookbook operations and membership
type CookbookService struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// Ensure CookbookService implements ICookbookService
var _ ICookbookService = (*CookbookService)(nil)

// NewCookbookService creates a new CookbookService instance
func NewCookbookService(repo *repository.Repository, logger *slog.Logger) *CookbookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CookbookService{
		repo:   repo,
		logger: logger.With("component", "cookbooks"),
	}
}

// CreateCookbook creates the cookbook and claims the requested recipes that
// belong to ownerID. Ids that are unknown or owned by someone else are dropped.
func (s *CookbookService) CreateCookbook(ctx context.Context, ownerID uint, req *types.CreateCookbookRequest) (*models.CookbookWithOwner, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	cookbook := &models.Cookbook{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
	}
	var claimed int
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateCookbook(ctx, cookbook); err != nil {
			return err
		}
		ids, err := resolveMembers(ctx, tx, req.RecipeIDs, ownerID)
		if err != nil {
			return err
		}
		claimed = len(ids)
		return tx.AssignRecipesToCookbook(ctx, ids, cookbook.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cookbook created",
		"cookbook_id", cookbook.ID,
		"owner_id", ownerID,
		"requested", len(req.RecipeIDs),
		"members", claimed,
	)
	return loadCookbook(ctx, s.repo, cookbook.ID)
}

// GetCookbook returns the cookbook with its author and members
func (s *CookbookService) GetCookbook(ctx context.Context, id uint) (*models.CookbookWithOwner, error) {
	return loadCookbook(ctx, s.repo, id)
}

// UpdateCookbook applies the scalar fields present in patch. When recipe_ids
// is present the membership is replaced by the resolved set, evicting former
// members that are not in it. Everything happens in one transaction.
func (s *CookbookService) UpdateCookbook(ctx context.Context, callerID, id uint, patch *types.UpdateCookbookRequest) (*models.CookbookWithOwner, error) {
	cookbook, err := s.repo.FindCookbook(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "cookbook", id)
	}
	if cookbook.OwnerID != callerID {
		return nil, fmt.Errorf("%w: cookbook %d belongs to another user", ErrForbidden, id)
	}

	fields := map[string]interface{}{}
	if patch.Title.Set {
		if !patch.Title.HasValue() || strings.TrimSpace(patch.Title.Value) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		fields["title"] = patch.Title.Value
	}
	if patch.Description.Set {
		fields["description"] = patch.Description.Ptr()
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.UpdateCookbookFields(ctx, id, fields); err != nil {
			return err
		}
		if !patch.RecipeIDs.Set {
			return nil
		}
		// null is treated as an empty list
		ids, err := resolveMembers(ctx, tx, patch.RecipeIDs.Value, cookbook.OwnerID)
		if err != nil {
			return err
		}
		if err := tx.DetachRecipesFromCookbook(ctx, id, ids); err != nil {
			return err
		}
		return tx.AssignRecipesToCookbook(ctx, ids, id)
	})
	if err != nil {
		return nil, err
	}

	return loadCookbook(ctx, s.repo, id)
}

// DeleteCookbook releases the cookbook's recipes, removes its ratings and
// deletes it. Recipes themselves are kept.
func (s *CookbookService) DeleteCookbook(ctx context.Context, callerID, id uint) error {
	cookbook, err := s.repo.FindCookbook(ctx, id)
	if err != nil {
		return notFoundOr(err, "cookbook", id)
	}
	if cookbook.OwnerID != callerID {
		return fmt.Errorf("%w: cookbook %d belongs to another user", ErrForbidden, id)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.DetachRecipesFromCookbook(ctx, id, nil); err != nil {
			return err
		}
		if err := tx.DeleteRatings(ctx, repository.CookbookTarget(id)); err != nil {
			return err
		}
		return tx.DeleteCookbook(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "cookbook", id)
	}

	s.logger.InfoContext(ctx, "cookbook deleted", "cookbook_id", id, "owner_id", callerID)
	return nil
}

// ListCookbooks returns a window of cookbooks, each with its author
func (s *CookbookService) ListCookbooks(ctx context.Context, filter repository.CookbookFilter) ([]models.CookbookWithOwner, error) {
	cookbooks, err := s.repo.ListCookbooks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return cookbooksWithOwners(ctx, s.repo, cookbooks)
}

// resolveMembers keeps the requested ids that exist and belong to ownerID.
func resolveMembers(ctx context.Context, repo *repository.Repository, requested []uint, ownerID uint) ([]uint, error) {
	recipes, err := repo.FindRecipesByIDsForOwner(ctx, requested, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
