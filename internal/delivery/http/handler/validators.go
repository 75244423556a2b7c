package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// RegisterValidators installs the enum validators referenced by binding tags
// (`fitlevel`, `weightunit`). Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("fitlevel", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseLevel(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("weightunit", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseWeightUnit(fl.Field().String())
		return err == nil
	})
}
