package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/types"
)

type listRecipesQuery struct {
	Skip    int     `form:"skip"`
	Limit   int     `form:"limit"`
	Country *string `form:"country"`
	Type    *string `form:"type"`
	OwnerID *uint   `form:"owner_id"`
}

type RecipeHandler struct {
	recipeService service.IRecipeService
	exportService service.IExportService
	auth          middleware.TokenValidator
	createLimiter *middleware.RateLimiter
	exportLimiter *middleware.RateLimiter
	logger        *slog.Logger
}

func NewRecipeHandler(
	recipeService service.IRecipeService,
	exportService service.IExportService,
	auth middleware.TokenValidator,
	createLimiter, exportLimiter *middleware.RateLimiter,
	logger *slog.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		exportService: exportService,
		auth:          auth,
		createLimiter: createLimiter,
		exportLimiter: exportLimiter,
		logger:        logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.auth)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/countries", h.ListCountries)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/pdf", h.DownloadPDF)
		recipes.POST("", authed, h.createLimiter.Middleware(middleware.ByUser), h.CreateRecipe)
		recipes.POST("/:id/export", authed, h.exportLimiter.Middleware(middleware.ByUser), h.ExportPDF)
		recipes.PUT("/:id", authed, h.UpdateRecipe)
		recipes.PATCH("/:id", authed, h.UpdateRecipe)
		recipes.DELETE("/:id", authed, h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q listRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), repository.RecipeFilter{
		Page:    repository.Page{Skip: q.Skip, Limit: q.Limit},
		Country: emptyToNil(q.Country),
		Type:    emptyToNil(q.Type),
		OwnerID: q.OwnerID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListCountries(c *gin.Context) {
	countries, err := h.recipeService.ListUniqueCountries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadPDF renders the recipe and streams it as an attachment.
func (h *RecipeHandler) DownloadPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.RenderRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportPDF renders the recipe, stores it and returns the public URL.
func (h *RecipeHandler) ExportPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	url, err := h.exportService.ExportRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types.URLResponse{URL: url})
}
