package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"prep-meter/internal/utils"
)

// clockPattern accepts HH:mm, plus 24:00 for the end of the day.
var clockPattern = regexp.MustCompile(`^(([01][0-9]|2[0-3]):[0-5][0-9]|24:00)$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// describeValidation flattens validator errors into one readable line.
func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s fails %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag())
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
