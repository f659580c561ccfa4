package service

import (
	"context"
	"fmt"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
)

// RatingService handles scores on recipes and cookbooks
type RatingService struct {
	repo *repository.Repository
}

var _ IRatingService = (*RatingService)(nil)

func NewRatingService(repo *repository.Repository) *RatingService {
	return &RatingService{repo: repo}
}

// RateRecipe records the user's score for a recipe, replacing any earlier one.
func (s *RatingService) RateRecipe(ctx context.Context, userID, recipeID uint, score int) (*models.Rating, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindRecipe(ctx, recipeID); err != nil {
		return nil, notFoundOr(err, "recipe", recipeID)
	}
	return s.repo.UpsertRating(ctx, userID, repository.RecipeTarget(recipeID), score)
}

// RateCookbook records the user's score for a cookbook, replacing any earlier one.
func (s *RatingService) RateCookbook(ctx context.Context, userID, cookbookID uint, score int) (*models.Rating, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindCookbook(ctx, cookbookID); err != nil {
		return nil, notFoundOr(err, "cookbook", cookbookID)
	}
	return s.repo.UpsertRating(ctx, userID, repository.CookbookTarget(cookbookID), score)
}

func (s *RatingService) RecipeRatings(ctx context.Context, recipeID uint) (*models.RatingSummary, error) {
	if _, err := s.repo.FindRecipe(ctx, recipeID); err != nil {
		return nil, notFoundOr(err, "recipe", recipeID)
	}
	return s.summary(ctx, repository.RecipeTarget(recipeID))
}

func (s *RatingService) CookbookRatings(ctx context.Context, cookbookID uint) (*models.RatingSummary, error) {
	if _, err := s.repo.FindCookbook(ctx, cookbookID); err != nil {
		return nil, notFoundOr(err, "cookbook", cookbookID)
	}
	return s.summary(ctx, repository.CookbookTarget(cookbookID))
}

func (s *RatingService) summary(ctx context.Context, target repository.RatingTarget) (*models.RatingSummary, error) {
	ratings, err := s.repo.ListRatings(ctx, target)
	if err != nil {
		return nil, err
	}
	summary := &models.RatingSummary{Count: len(ratings), Ratings: ratings}
	if len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r.Score
		}
		summary.Average = float64(total) / float64(len(ratings))
	}
	return summary, nil
}

func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return fmt.Errorf("%w: score must be between %d and %d", ErrValidation, models.MinScore, models.MaxScore)
	}
	return nil
}
