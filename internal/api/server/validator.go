package server

import (
	"github.com/DjordjeVuckovic/news-pulse/internal/validation"
)

// Validator adapts the shared validator to echo.Context.Validate.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(i any) error {
	return validation.Struct(i)
}
