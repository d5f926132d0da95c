package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/piresc/accounts/internal/pkg/apperror"
)

// RequestValidator plugs go-playground/validator into echo's Context.Validate
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator reading the `validate` struct tags
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return &RequestValidator{validate: v}
}

// Validate returns an error wrapping apperror.ErrValidation naming the failing fields
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", apperror.ErrValidation, strings.Join(msgs, ", "))
}

// ValidationMessage strips the sentinel prefix so callers see only the field problems
func ValidationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), apperror.ErrValidation.Error()+": ")
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
