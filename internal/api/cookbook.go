package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/types"
)

type listCookbooksQuery struct {
	Skip    int     `form:"skip"`
	Limit   int     `form:"limit"`
	Search  *string `form:"search"`
	OwnerID *uint   `form:"owner_id"`
}

type CookbookHandler struct {
	cookbookService service.ICookbookService
	exportService   service.IExportService
	auth            middleware.TokenValidator
	exportLimiter   *middleware.RateLimiter
	logger          *slog.Logger
}

func NewCookbookHandler(
	cookbookService service.ICookbookService,
	exportService service.IExportService,
	auth middleware.TokenValidator,
	exportLimiter *middleware.RateLimiter,
	logger *slog.Logger,
) *CookbookHandler {
	return &CookbookHandler{
		cookbookService: cookbookService,
		exportService:   exportService,
		auth:            auth,
		exportLimiter:   exportLimiter,
		logger:          logger,
	}
}

func (h *CookbookHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.auth)

	cookbooks := router.Group("/cookbooks")
	{
		cookbooks.GET("", h.ListCookbooks)
		cookbooks.GET("/:id", h.GetCookbook)
		cookbooks.GET("/:id/pdf", h.exportLimiter.Middleware(middleware.ByIP), h.ExportPDF)
		cookbooks.POST("", authed, h.CreateCookbook)
		cookbooks.PUT("/:id", authed, h.UpdateCookbook)
		cookbooks.PATCH("/:id", authed, h.UpdateCookbook)
		cookbooks.DELETE("/:id", authed, h.DeleteCookbook)
	}
}

func (h *CookbookHandler) ListCookbooks(c *gin.Context) {
	var q listCookbooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	cookbooks, err := h.cookbookService.ListCookbooks(c.Request.Context(), repository.CookbookFilter{
		Page:    repository.Page{Skip: q.Skip, Limit: q.Limit},
		Search:  emptyToNil(q.Search),
		OwnerID: q.OwnerID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cookbooks)
}

func (h *CookbookHandler) GetCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cookbook, err := h.cookbookService.GetCookbook(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cookbook)
}

func (h *CookbookHandler) CreateCookbook(c *gin.Context) {
	var req types.CreateCookbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	cookbook, err := h.cookbookService.CreateCookbook(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cookbook)
}

func (h *CookbookHandler) UpdateCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.UpdateCookbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	cookbook, err := h.cookbookService.UpdateCookbook(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cookbook)
}

func (h *CookbookHandler) DeleteCookbook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthenticated)
		return
	}

	if err := h.cookbookService.DeleteCookbook(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPDF renders the whole cookbook, stores it and returns the public URL.
func (h *CookbookHandler) ExportPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	url, err := h.exportService.ExportCookbook(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types.URLResponse{URL: url})
}
