package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/recetario/backend/internal/models"
	"gorm.io/gorm"
)

// RatingTarget points at exactly one recipe or cookbook.
type RatingTarget struct {
	RecipeID   *uint
	CookbookID *uint
}

func RecipeTarget(id uint) RatingTarget {
	return RatingTarget{RecipeID: &id}
}

func CookbookTarget(id uint) RatingTarget {
	return RatingTarget{CookbookID: &id}
}

func (t RatingTarget) scope(db *gorm.DB) *gorm.DB {
	if t.RecipeID != nil {
		return db.Where("recipe_id = ?", *t.RecipeID)
	}
	return db.Where("cookbook_id = ?", *t.CookbookID)
}

// UpsertRating keeps one rating per user and target, replacing the score
// of an existing one.
func (r *Repository) UpsertRating(ctx context.Context, userID uint, target RatingTarget, score int) (*models.Rating, error) {
	var rating models.Rating
	err := target.scope(r.conn(ctx)).Where("user_id = ?", userID).First(&rating).Error
	switch {
	case err == nil:
		rating.Score = score
		if err := r.conn(ctx).Model(&rating).Update("score", score).Error; err != nil {
			return nil, fmt.Errorf("failed to update rating: %w", err)
		}
		return &rating, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{
			Score:      score,
			UserID:     userID,
			RecipeID:   target.RecipeID,
			CookbookID: target.CookbookID,
		}
		if err := r.conn(ctx).Create(&rating).Error; err != nil {
			return nil, fmt.Errorf("failed to create rating: %w", err)
		}
		return &rating, nil
	default:
		return nil, fmt.Errorf("failed to load rating: %w", err)
	}
}

func (r *Repository) ListRatings(ctx context.Context, target RatingTarget) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := target.scope(r.conn(ctx)).Order("id ASC").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

func (r *Repository) DeleteRatings(ctx context.Context, target RatingTarget) error {
	if err := target.scope(r.conn(ctx)).Delete(&models.Rating{}).Error; err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}
	return nil
}
