package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/recetario/backend/config"
	"github.com/recetario/backend/internal/database"
	"github.com/recetario/backend/internal/logger"
	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/types"
)

const demoPassword = "recetario123"

type demoUser struct {
	username string
	email    string
}

type demoRecipe struct {
	owner        string
	title        string
	country      string
	kind         string
	minutes      int
	difficulty   string
	instructions string
	ingredients  []models.Ingredient
}

var demoUsers = []demoUser{
	{username: "abuela_rosa", email: "rosa@example.com"},
	{username: "chef_tomas", email: "tomas@example.com"},
}

var demoRecipes = []demoRecipe{
	{
		owner: "abuela_rosa", title: "Pastel de choclo", country: "Chile", kind: "Plato principal",
		minutes: 90, difficulty: "medium",
		instructions: "Sofreír la cebolla con la carne.\nMoler el choclo con albahaca.\nArmar en greda y hornear.",
		ingredients: []models.Ingredient{
			{Name: "choclo", Amount: ptr("6"), Unit: ptr("unidades")},
			{Name: "carne molida", Amount: ptr("500"), Unit: ptr("g")},
			{Name: "cebolla", Amount: ptr("2")},
		},
	},
	{
		owner: "abuela_rosa", title: "Sopaipillas", country: "Chile", kind: "Masa",
		minutes: 45, difficulty: "easy",
		instructions: "Mezclar zapallo y harina.\nUslerear y cortar.\nFreír en aceite caliente.",
		ingredients: []models.Ingredient{
			{Name: "zapallo", Amount: ptr("300"), Unit: ptr("g")},
			{Name: "harina", Amount: ptr("500"), Unit: ptr("g")},
		},
	},
	{
		owner: "chef_tomas", title: "Ceviche", country: "Perú", kind: "Entrada",
		minutes: 30, difficulty: "medium",
		instructions: "Cortar el pescado en cubos.\nCubrir con limón.\nAgregar cebolla morada y ají.",
		ingredients: []models.Ingredient{
			{Name: "pescado blanco", Amount: ptr("600"), Unit: ptr("g")},
			{Name: "limón", Amount: ptr("10")},
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: "text"})

	db, err := database.New(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db, cfg.DatabaseURL, cfg.MigrationsDir, appLogger); err != nil {
		appLogger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), repository.New(db), cfg.JWTSecret, appLogger); err != nil {
		appLogger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

// seed creates the demo accounts, recipes and one cookbook per user. It does
// nothing when the database already has users.
func seed(ctx context.Context, repo *repository.Repository, jwtSecret string, log *slog.Logger) error {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("database already has users, skipping seed", "users", count)
		return nil
	}

	auth := service.NewAuthService(repo, jwtSecret, service.DefaultTokenTTL, log)
	recipes := service.NewRecipeService(repo, nil, log)
	cookbooks := service.NewCookbookService(repo, log)

	users := make(map[string]*models.User, len(demoUsers))
	for _, u := range demoUsers {
		user, err := auth.Register(ctx, u.username, u.email, demoPassword)
		if err != nil {
			return fmt.Errorf("register %s: %w", u.username, err)
		}
		users[u.username] = user
	}

	owned := make(map[string][]uint)
	for _, r := range demoRecipes {
		created, err := recipes.CreateRecipe(ctx, users[r.owner].ID, &types.CreateRecipeRequest{
			Title:                  r.title,
			Ingredients:            r.ingredients,
			Instructions:           r.instructions,
			InstructionsFormat:     models.InstructionsNumbered,
			Country:                ptr(r.country),
			Type:                   ptr(r.kind),
			PreparationTimeMinutes: r.minutes,
			Difficulty:             r.difficulty,
		})
		if err != nil {
			return fmt.Errorf("create recipe %q: %w", r.title, err)
		}
		owned[r.owner] = append(owned[r.owner], created.ID)
	}

	for _, u := range demoUsers {
		_, err := cookbooks.CreateCookbook(ctx, users[u.username].ID, &types.CreateCookbookRequest{
			Title:       "Recetario de " + u.username,
			Description: ptr("Recetas de ejemplo"),
			RecipeIDs:   owned[u.username],
		})
		if err != nil {
			return fmt.Errorf("create cookbook for %s: %w", u.username, err)
		}
	}

	log.Info("seed complete", "users", len(demoUsers), "recipes", len(demoRecipes), "password", demoPassword)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
