package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/recetario/backend/internal/export"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/storage"
)

const pdfContentType = "application/pdf"

// ExportService renders recipes and cookbooks to PDF, stores the document
// and remembers its URL on the entity.
type ExportService struct {
	repo     *repository.Repository
	renderer export.Renderer
	store    storage.ObjectStore
	bucket   string
	logger   *slog.Logger
}

var _ IExportService = (*ExportService)(nil)

func NewExportService(repo *repository.Repository, renderer export.Renderer, store storage.ObjectStore, bucket string, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		repo:     repo,
		renderer: renderer,
		store:    store,
		bucket:   bucket,
		logger:   logger.With("component", "export"),
	}
}

// ExportRecipe returns the public URL of the recipe's PDF.
func (s *ExportService) ExportRecipe(ctx context.Context, recipeID uint) (string, error) {
	recipe, err := loadRecipe(ctx, s.repo, recipeID)
	if err != nil {
		return "", err
	}

	data, err := s.renderer.RenderRecipe(recipe)
	if err != nil {
		s.logger.ErrorContext(ctx, "recipe render failed", "recipe_id", recipeID, "error", err)
		return "", ErrRenderFailed
	}

	url, err := s.upload(ctx, ExportFileName("recipe", recipe.ID, recipe.Title), data)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetRecipePDFURL(ctx, recipeID, url); err != nil {
		return "", err
	}
	return url, nil
}

// ExportCookbook returns the public URL of the cookbook's PDF, which
// includes every member recipe.
func (s *ExportService) ExportCookbook(ctx context.Context, cookbookID uint) (string, error) {
	cookbook, err := loadCookbook(ctx, s.repo, cookbookID)
	if err != nil {
		return "", err
	}

	data, err := s.renderer.RenderCookbook(cookbook)
	if err != nil {
		s.logger.ErrorContext(ctx, "cookbook render failed", "cookbook_id", cookbookID, "error", err)
		return "", ErrRenderFailed
	}

	url, err := s.upload(ctx, ExportFileName("cookbook", cookbook.ID, cookbook.Title), data)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetCookbookPDFURL(ctx, cookbookID, url); err != nil {
		return "", err
	}
	return url, nil
}

// RenderRecipe renders without storing, for direct downloads.
func (s *ExportService) RenderRecipe(ctx context.Context, recipeID uint) ([]byte, string, error) {
	recipe, err := loadRecipe(ctx, s.repo, recipeID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.RenderRecipe(recipe)
	if err != nil {
		s.logger.ErrorContext(ctx, "recipe render failed", "recipe_id", recipeID, "error", err)
		return nil, "", ErrRenderFailed
	}
	return data, recipe.Title + ".pdf", nil
}

func (s *ExportService) upload(ctx context.Context, name string, data []byte) (string, error) {
	url, err := s.store.Store(ctx, data, s.bucket, name, pdfContentType)
	if err != nil {
		s.logger.ErrorContext(ctx, "pdf upload failed", "bucket", s.bucket, "path", name, "error", err)
		return "", ErrUploadFailed
	}
	s.logger.InfoContext(ctx, "pdf exported", "path", name, "url", url)
	return url, nil
}

// ExportFileName builds "<kind>_<id>_<Title_With_Underscores>.pdf".
func ExportFileName(kind string, id uint, title string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(title)
	return fmt.Sprintf("%s_%d_%s.pdf", kind, id, safe)
}
