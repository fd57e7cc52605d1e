package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// Validate checks the validate tags of form and returns one message per failed field.
// It returns nil when the form is valid.
func Validate(form interface{}) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	errorMessages := make([]string, len(validationErrors))
	for i, ve := range validationErrors {
		errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
	}

	return errorMessages
}
