package mocks

import (
	"github.com/recetario/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a mock implementation of export.Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderRecipe(recipe *models.RecipeWithOwner) ([]byte, error) {
	args := m.Called(recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderCookbook(cookbook *models.CookbookWithOwner) ([]byte, error) {
	args := m.Called(cookbook)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
