package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/recetario/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database with the schema migrated.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// A single connection keeps the shared in-memory database alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// CreateRecipe inserts a minimal recipe owned by ownerID.
func CreateRecipe(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:              title,
		Ingredients:        models.Ingredients{{Name: "salt"}},
		Instructions:       "Mix.\nServe.",
		InstructionsFormat: models.InstructionsNumbered,
		Difficulty:         models.DefaultDifficulty,
		OwnerID:            ownerID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", title, err)
	}
	return recipe
}

// CreateCookbook inserts an empty cookbook owned by ownerID.
func CreateCookbook(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Cookbook {
	t.Helper()
	cookbook := &models.Cookbook{Title: title, OwnerID: ownerID}
	if err := db.Create(cookbook).Error; err != nil {
		t.Fatalf("failed to create cookbook %s: %v", title, err)
	}
	return cookbook
}
