package service

import (
	"errors"
	"fmt"

	"github.com/recetario/backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUploadFailed       = errors.New("upload failed")
	ErrRenderFailed       = errors.New("render failed")
	ErrInvalidToken       = errors.New("invalid token")
)

// notFoundOr maps a repository miss onto ErrNotFound naming the entity,
// and wraps anything else.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return fmt.Errorf("failed to load %s: %w", entity, err)
}
