package export

import (
	"bytes"
	"testing"

	"github.com/recetario/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRecipe() models.RecipeWithOwner {
	return models.RecipeWithOwner{
		Recipe: models.Recipe{
			ID:    1,
			Title: "Crème brûlée",
			Ingredients: models.Ingredients{
				{Name: "cream", Amount: strPtr("500"), Unit: strPtr("ml")},
				{Name: "sugar", Amount: strPtr("100")},
				{Name: "vanilla"},
			},
			Instructions:           "Heat the cream.\n\nWhisk yolks and sugar.\nBake.",
			InstructionsFormat:     models.InstructionsNumbered,
			Country:                strPtr("France"),
			PreparationTimeMinutes: 45,
			Difficulty:             "hard",
			Notes:                  strPtr("Serve cold."),
		},
		Owner: models.UserSummary{ID: 1, Username: "julia"},
	}
}

func TestRenderRecipe(t *testing.T) {
	recipe := sampleRecipe()
	out, err := NewPDFRenderer().RenderRecipe(&recipe)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderCookbook(t *testing.T) {
	recipe := sampleRecipe()
	cookbook := models.CookbookWithOwner{
		Cookbook: models.Cookbook{ID: 3, Title: "Postres", Description: strPtr("Dulces de la casa")},
		Owner:    models.UserSummary{ID: 1, Username: "julia"},
		Recipes:  []models.RecipeWithOwner{recipe, recipe},
	}
	out, err := NewPDFRenderer().RenderCookbook(&cookbook)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty := models.CookbookWithOwner{Cookbook: models.Cookbook{ID: 4, Title: "Vacío"}}
	out, err = NewPDFRenderer().RenderCookbook(&empty)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMetaLine(t *testing.T) {
	recipe := sampleRecipe()
	assert.Equal(t, "FRANCE | HARD | 45 MIN | POR JULIA", MetaLine(&recipe.Recipe, "julia"))

	recipe.Country = nil
	assert.Equal(t, "INTERNACIONAL | HARD | 45 MIN", MetaLine(&recipe.Recipe, ""))
}

func TestIngredientLine(t *testing.T) {
	assert.Equal(t, "• cream (500 ml)", IngredientLine(models.Ingredient{Name: "cream", Amount: strPtr("500"), Unit: strPtr("ml")}))
	assert.Equal(t, "• sugar (100)", IngredientLine(models.Ingredient{Name: "sugar", Amount: strPtr("100")}))
	assert.Equal(t, "• vanilla", IngredientLine(models.Ingredient{Name: "vanilla"}))
}

func TestSteps(t *testing.T) {
	instructions := "Heat the cream.\n\n  Whisk.  \nBake."
	assert.Equal(t, []string{"1. Heat the cream.", "2. Whisk.", "3. Bake."}, Steps(instructions, models.InstructionsNumbered))
	assert.Equal(t, []string{"Heat the cream.", "Whisk.", "Bake."}, Steps(instructions, models.InstructionsPlain))
}
