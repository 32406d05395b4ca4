// Package schema validates flow inputs and outputs against their struct
// tags before and after each hosted-model call.
package schema

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/agenthands/labscan/internal/apperr"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
	})
	return validate
}

// Validate checks caller input and returns an ErrValidation-marked error
// naming every failing field by its JSON name.
func Validate(v interface{}) error {
	if err := Check(v); err != nil {
		return errors.Mark(err, apperr.ErrValidation)
	}
	return nil
}

// Check is Validate without the validation mark. Model replies go through
// Check so a bad reply is not reported as bad input.
func Check(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "schema")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return errors.Newf("%s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "startswith":
		return fe.Field() + " must start with " + fe.Param()
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}
