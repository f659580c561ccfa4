package repository

import (
	"context"
	"fmt"

	"github.com/recetario/backend/internal/models"
)

type CookbookFilter struct {
	Page
	Search  *string
	OwnerID *uint
}

func (r *Repository) FindCookbook(ctx context.Context, id uint) (*models.Cookbook, error) {
	var cookbook models.Cookbook
	if err := r.conn(ctx).First(&cookbook, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cookbook, nil
}

// ListCookbooks matches Search as a substring of the title, using the
// store's collation for case handling.
func (r *Repository) ListCookbooks(ctx context.Context, filter CookbookFilter) ([]models.Cookbook, error) {
	page := filter.Page.Normalize()
	query := r.conn(ctx).Model(&models.Cookbook{})
	if filter.Search != nil && *filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+*filter.Search+"%")
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var cookbooks []models.Cookbook
	if err := query.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&cookbooks).Error; err != nil {
		return nil, fmt.Errorf("failed to list cookbooks: %w", err)
	}
	return cookbooks, nil
}

func (r *Repository) CreateCookbook(ctx context.Context, cookbook *models.Cookbook) error {
	if err := r.conn(ctx).Create(cookbook).Error; err != nil {
		return fmt.Errorf("failed to create cookbook: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCookbookFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.conn(ctx).Model(&models.Cookbook{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update cookbook: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCookbook(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&models.Cookbook{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cookbook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetCookbookPDFURL(ctx context.Context, id uint, url string) error {
	return r.UpdateCookbookFields(ctx, id, map[string]interface{}{"pdf_url": url})
}
