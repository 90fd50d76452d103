package service

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

const minPhoneDigits = 10

// NewValidator returns a validator with the custom rules used by the services.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return countDigits(fl.Field().String()) >= minPhoneDigits
	})
	return v
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

var fieldMessages = map[string]string{
	"Name":       "Please enter your name.",
	"Phone":      "Please enter a valid phone number with at least 10 digits.",
	"Email":      "Please enter a valid email address.",
	"PRN":        "Please enter your PRN.",
	"Department": "Please select your department.",
	"Class":      "Please select your class.",
	"Division":   "Please select your division.",
	"EmployeeID": "Please enter your employee ID.",
	"Subject":    "Please enter the subject.",
}

// validationError turns the first failing field into a field-specific error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	first := fieldErrs[0]
	message, ok := fieldMessages[first.StructField()]
	if !ok {
		message = "Please fill in all fields."
	}
	return appErrors.Invalid(first.Field(), message)
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
