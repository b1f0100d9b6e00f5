// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
package validator

import (
	domainerrors "market/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates an echo-compatible validator backed by go-playground.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct tag validation and maps failures to the shared
// validation error so the error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
