package genfit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"genfit/internal/evo"
)

// ValidationError reports one rejected request field.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", e.Field, e.Tag)
	}
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Unwrap ties request validation into the configuration error taxonomy so
// errors.Is(err, evo.ErrInvalidConfig) holds.
func (e ValidationErrors) Unwrap() error {
	return evo.ErrInvalidConfig
}

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() (*requestValidator, error) {
	return &requestValidator{validate: validator.New()}, nil
}

func (v *requestValidator) validateRun(req RunRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
