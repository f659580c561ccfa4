package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/types"
)

type RatingHandler struct {
	ratingService service.IRatingService
	auth          middleware.TokenValidator
	logger        *slog.Logger
}

func NewRatingHandler(ratingService service.IRatingService, auth middleware.TokenValidator, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, auth: auth, logger: logger}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.auth)

	router.GET("/recipes/:id/ratings", h.summary(h.ratingService.RecipeRatings))
	router.POST("/recipes/:id/ratings", authed, h.rate(h.ratingService.RateRecipe))
	router.GET("/cookbooks/:id/ratings", h.summary(h.ratingService.CookbookRatings))
	router.POST("/cookbooks/:id/ratings", authed, h.rate(h.ratingService.RateCookbook))
}

type rateFunc func(ctx context.Context, userID, targetID uint, score int) (*models.Rating, error)

type summaryFunc func(ctx context.Context, targetID uint) (*models.RatingSummary, error)

// rate stores the caller's score for the target in the :id parameter.
func (h *RatingHandler) rate(fn rateFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req types.RateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		userID, ok := middleware.UserID(c)
		if !ok {
			respondError(c, h.logger, service.ErrUnauthenticated)
			return
		}

		rating, err := fn(c.Request.Context(), userID, id, req.Score)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, rating)
	}
}

func (h *RatingHandler) summary(fn summaryFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		summary, err := fn(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
