package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/recetario/backend/internal/models"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request types.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("instructions_format", validInstructionsFormat)
	})
}

func validInstructionsFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.InstructionsNumbered, models.InstructionsPlain:
		return true
	}
	return false
}
