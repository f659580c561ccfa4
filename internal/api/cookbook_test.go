package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/testhelpers"
	"github.com/recetario/backend/internal/types"
)

func memberIDs(cookbook models.CookbookWithOwner) []uint {
	ids := make([]uint, 0, len(cookbook.Recipes))
	for _, r := range cookbook.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestCreateCookbook_DropsForeignRecipes(t *testing.T) {
	env := setupTestRouter(t)
	ana, token := env.createUserAndToken(t, "ana")
	bob := testhelpers.CreateUser(t, env.db, "bob")
	mine := testhelpers.CreateRecipe(t, env.db, ana.ID, "Pan")
	theirs := testhelpers.CreateRecipe(t, env.db, bob.ID, "Paella")

	w := env.do(t, http.MethodPost, "/api/v1/cookbooks", token, map[string]any{
		"title":      "Básicos",
		"recipe_ids": []uint{mine.ID, theirs.ID, 999},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.CookbookWithOwner](t, w)
	assert.Equal(t, "ana", created.Owner.Username)
	assert.Equal(t, []uint{mine.ID}, memberIDs(created))

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, theirs.ID).Error)
	assert.Nil(t, stored.CookbookID)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cookbooks/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[models.CookbookWithOwner](t, w)
	require.Len(t, fetched.Recipes, 1)
	assert.Equal(t, "ana", fetched.Recipes[0].Owner.Username)
}

func TestUpdateCookbook_Membership(t *testing.T) {
	env := setupTestRouter(t)
	ana, token := env.createUserAndToken(t, "ana")
	_, bobToken := env.createUserAndToken(t, "bob")
	r1 := testhelpers.CreateRecipe(t, env.db, ana.ID, "Uno")
	r2 := testhelpers.CreateRecipe(t, env.db, ana.ID, "Dos")
	r3 := testhelpers.CreateRecipe(t, env.db, ana.ID, "Tres")

	w := env.do(t, http.MethodPost, "/api/v1/cookbooks", token, map[string]any{
		"title":      "Casa",
		"recipe_ids": []uint{r1.ID, r2.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/api/v1/cookbooks/%d", decode[models.CookbookWithOwner](t, w).ID)

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPut, path, bobToken, map[string]any{"recipe_ids": []uint{}}).Code)

	// absent recipe_ids keeps members
	w = env.do(t, http.MethodPatch, path, token, map[string]any{"title": "Casa nueva"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.CookbookWithOwner](t, w)
	assert.Equal(t, "Casa nueva", updated.Title)
	assert.Equal(t, []uint{r1.ID, r2.ID}, memberIDs(updated))

	// present recipe_ids replaces members
	w = env.do(t, http.MethodPut, path, token, map[string]any{"recipe_ids": []uint{r3.ID, r2.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{r2.ID, r3.ID}, memberIDs(decode[models.CookbookWithOwner](t, w)))

	var evicted models.Recipe
	require.NoError(t, env.db.First(&evicted, r1.ID).Error)
	assert.Nil(t, evicted.CookbookID)

	// an empty list clears them
	w = env.do(t, http.MethodPut, path, token, map[string]any{"recipe_ids": []uint{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.CookbookWithOwner](t, w).Recipes)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, path, token, map[string]any{"title": nil}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/api/v1/cookbooks/999", token, map[string]any{}).Code)
}

func TestDeleteCookbook_DetachesMembers(t *testing.T) {
	env := setupTestRouter(t)
	ana, token := env.createUserAndToken(t, "ana")
	_, bobToken := env.createUserAndToken(t, "bob")
	recipe := testhelpers.CreateRecipe(t, env.db, ana.ID, "Pan")

	w := env.do(t, http.MethodPost, "/api/v1/cookbooks", token, map[string]any{"title": "Casa", "recipe_ids": []uint{recipe.ID}})
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/api/v1/cookbooks/%d", decode[models.CookbookWithOwner](t, w).ID)

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, "", nil).Code)

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, recipe.ID).Error)
	assert.Nil(t, stored.CookbookID)
}

func TestListCookbooks(t *testing.T) {
	env := setupTestRouter(t)
	ana, _ := env.createUserAndToken(t, "ana")
	bob := testhelpers.CreateUser(t, env.db, "bob")
	testhelpers.CreateCookbook(t, env.db, ana.ID, "Postres")
	testhelpers.CreateCookbook(t, env.db, ana.ID, "Sopas")
	testhelpers.CreateCookbook(t, env.db, bob.ID, "Postres de Bob")

	all := decode[[]models.CookbookWithOwner](t, env.do(t, http.MethodGet, "/api/v1/cookbooks", "", nil))
	assert.Len(t, all, 3)

	search := decode[[]models.CookbookWithOwner](t, env.do(t, http.MethodGet, "/api/v1/cookbooks?search=Postres", "", nil))
	require.Len(t, search, 2)
	assert.Equal(t, "bob", search[1].Owner.Username)

	mine := decode[[]models.CookbookWithOwner](t, env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cookbooks?owner_id=%d", bob.ID), "", nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "Postres de Bob", mine[0].Title)
}

func TestCookbookPDF(t *testing.T) {
	env := setupTestRouter(t)
	ana, _ := env.createUserAndToken(t, "ana")
	cookbook := testhelpers.CreateCookbook(t, env.db, ana.ID, "Mis recetas")

	objectPath := fmt.Sprintf("cookbook_%d_Mis_recetas.pdf", cookbook.ID)
	env.renderer.On("RenderCookbook", mock.AnythingOfType("*models.CookbookWithOwner")).Return([]byte("pdf"), nil)
	env.store.On("Store", mock.Anything, []byte("pdf"), testPDFBucket, objectPath, "application/pdf").
		Return("https://cdn.example/"+objectPath, nil)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cookbooks/%d/pdf", cookbook.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example/"+objectPath, decode[types.URLResponse](t, w).URL)

	var stored models.Cookbook
	require.NoError(t, env.db.First(&stored, cookbook.ID).Error)
	require.NotNil(t, stored.PDFURL)
	env.store.AssertExpectations(t)
}
