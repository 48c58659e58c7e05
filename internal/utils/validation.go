package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidationError reports whether err came from struct validation, so
// handlers can answer 400 instead of 500.
func IsValidationError(err error) bool {
	var verr validator.ValidationErrors
	return errors.As(err, &verr)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

// IsValidPhone accepts Vietnamese phone numbers: a leading 0 followed by
// 9 or 10 digits.
func IsValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^0\d{9,10}$`)
	return phoneRegex.MatchString(phone)
}

func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
