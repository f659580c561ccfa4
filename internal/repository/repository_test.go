package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   repository.Page
		want repository.Page
	}{
		{"defaults", repository.Page{}, repository.Page{Skip: 0, Limit: 100}},
		{"negative skip", repository.Page{Skip: -5, Limit: 10}, repository.Page{Skip: 0, Limit: 10}},
		{"negative limit", repository.Page{Skip: 3, Limit: -1}, repository.Page{Skip: 3, Limit: 100}},
		{"oversized limit", repository.Page{Limit: 1000}, repository.Page{Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestFindRecipe_NotFound(t *testing.T) {
	repo := repository.New(testhelpers.NewSQLiteDB(t))

	_, err := repo.FindRecipe(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindCookbook(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListRecipes_FiltersAndWindow(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	seed := []struct {
		owner   uint
		title   string
		country string
	}{
		{alice.ID, "tacos", "Mexico"},
		{alice.ID, "ceviche", "Peru"},
		{alice.ID, "mole", "Mexico"},
		{bob.ID, "bob's", ""},
	}
	for _, s := range seed {
		r := testhelpers.CreateRecipe(t, db, s.owner, s.title)
		require.NoError(t, repo.UpdateRecipeFields(ctx, r.ID, map[string]interface{}{"country": s.country}))
	}

	mexican, err := repo.ListRecipes(ctx, repository.RecipeFilter{Country: strPtr("Mexico")})
	require.NoError(t, err)
	assert.Len(t, mexican, 2)
	assert.Less(t, mexican[0].ID, mexican[1].ID)

	window, err := repo.ListRecipes(ctx, repository.RecipeFilter{Page: repository.Page{Skip: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, window, 2)

	owned, err := repo.ListRecipes(ctx, repository.RecipeFilter{OwnerID: &bob.ID})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "bob's", owned[0].Title)

	countries, err := repo.DistinctCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mexico", "Peru"}, countries)
}

func TestMembership_AssignAndDetach(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	cookbook := testhelpers.CreateCookbook(t, db, alice.ID, "Favourites")
	r1 := testhelpers.CreateRecipe(t, db, alice.ID, "one")
	r2 := testhelpers.CreateRecipe(t, db, alice.ID, "two")
	other := testhelpers.CreateRecipe(t, db, bob.ID, "other")

	resolved, err := repo.FindRecipesByIDsForOwner(ctx, []uint{r1.ID, r2.ID, other.ID, 999}, alice.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	require.NoError(t, repo.AssignRecipesToCookbook(ctx, []uint{r1.ID, r2.ID}, cookbook.ID))
	members, err := repo.FindRecipesByCookbook(ctx, cookbook.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, repo.DetachRecipesFromCookbook(ctx, cookbook.ID, []uint{r2.ID}))
	members, err = repo.FindRecipesByCookbook(ctx, cookbook.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, r2.ID, members[0].ID)

	detached, err := repo.FindRecipe(ctx, r1.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.CookbookID)

	require.NoError(t, repo.DetachRecipesFromCookbook(ctx, cookbook.ID, nil))
	members, err = repo.FindRecipesByCookbook(ctx, cookbook.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestListCookbooks_Search(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	testhelpers.CreateCookbook(t, db, alice.ID, "Summer salads")
	testhelpers.CreateCookbook(t, db, alice.ID, "Winter soups")

	found, err := repo.ListCookbooks(ctx, repository.CookbookFilter{Search: strPtr("salad")})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Summer salads", found[0].Title)

	all, err := repo.ListCookbooks(ctx, repository.CookbookFilter{Search: strPtr("")})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTransaction_RollsBack(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateCookbook(ctx, &models.Cookbook{Title: "tmp", OwnerID: alice.ID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	cookbooks, err := repo.ListCookbooks(ctx, repository.CookbookFilter{})
	require.NoError(t, err)
	assert.Empty(t, cookbooks)
}

func TestUpsertRating_ReplacesScore(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")
	recipe := testhelpers.CreateRecipe(t, db, alice.ID, "soup")

	_, err := repo.UpsertRating(ctx, alice.ID, repository.RecipeTarget(recipe.ID), 2)
	require.NoError(t, err)
	rating, err := repo.UpsertRating(ctx, alice.ID, repository.RecipeTarget(recipe.ID), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Score)

	ratings, err := repo.ListRatings(ctx, repository.RecipeTarget(recipe.ID))
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Score)

	require.NoError(t, repo.DeleteRatings(ctx, repository.RecipeTarget(recipe.ID)))
	ratings, err = repo.ListRatings(ctx, repository.RecipeTarget(recipe.ID))
	require.NoError(t, err)
	assert.Empty(t, ratings)
}
