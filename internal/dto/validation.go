package dto

import (
	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountCodeValidator accepts strings shaped like account codes, e.g. B700B.
func accountCodeValidator(fl validator.FieldLevel) bool {
	_, err := domain.NormalizeCode(fl.Field().String())
	return err == nil
}

// RegisterValidators installs the custom binding validators. Call once at
// startup before serving requests.
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("accountcode", accountCodeValidator)
	}
	return nil
}
