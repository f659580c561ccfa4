package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/internal/logger"
	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/testhelpers"
)

func TestSeed(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	require.NoError(t, seed(ctx, repo, "secret", logger.Discard()))

	var users, recipes, members int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Recipe{}).Count(&recipes)
	db.Model(&models.Recipe{}).Where("cookbook_id IS NOT NULL").Count(&members)
	assert.EqualValues(t, len(demoUsers), users)
	assert.EqualValues(t, len(demoRecipes), recipes)
	assert.Equal(t, recipes, members)

	// a second run leaves the data alone
	require.NoError(t, seed(ctx, repo, "secret", logger.Discard()))
	db.Model(&models.Recipe{}).Count(&recipes)
	assert.EqualValues(t, len(demoRecipes), recipes)
}
