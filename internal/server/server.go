package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recetario/backend/config"
	"github.com/recetario/backend/internal/api"
	"github.com/recetario/backend/internal/export"
	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/storage"
)

// Dependencies are the connections the server builds its services on.
// Redis is optional.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Store    storage.ObjectStore
	Renderer export.Renderer
	Logger   *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// New wires repositories, services and handlers into a gin router.
func New(cfg *config.Config, deps Dependencies) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	api.RegisterValidators()

	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	repo := repository.New(deps.DB)

	var countries service.CountryCache
	if deps.Redis != nil {
		countries = service.NewRedisCountryCache(deps.Redis)
	}

	var createLimiter, exportLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && deps.Redis != nil {
		createLimiter = middleware.NewRecipeCreationRateLimiter(deps.Redis, cfg.RateLimit.RecipeCreates, cfg.RateLimit.Window, log)
		exportLimiter = middleware.NewExportRateLimiter(deps.Redis, cfg.RateLimit.Exports, cfg.RateLimit.Window, log)
	}

	authService := service.NewAuthService(repo, cfg.JWTSecret, cfg.JWTTTL, log)
	recipeService := service.NewRecipeService(repo, countries, log)
	cookbookService := service.NewCookbookService(repo, log)
	ratingService := service.NewRatingService(repo)
	exportService := service.NewExportService(repo, deps.Renderer, deps.Store, cfg.Storage.PDFBucket, log)
	uploadService := service.NewUploadService(deps.Store, cfg.Storage.ImagesBucket, log)

	router.GET("/health", api.HealthHandler(repo))

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService, log).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, exportService, authService, createLimiter, exportLimiter, log).RegisterRoutes(v1)
	api.NewCookbookHandler(cookbookService, exportService, authService, exportLimiter, log).RegisterRoutes(v1)
	api.NewRatingHandler(ratingService, authService, log).RegisterRoutes(v1)
	api.NewUploadHandler(uploadService, authService, log).RegisterRoutes(v1)

	return &Server{
		cfg:    cfg,
		router: router,
		logger: log.With("component", "server"),
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
