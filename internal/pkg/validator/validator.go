package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}]{2,10}$`)

var months = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// 2-10 letters or digits, any script
	validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsUsername(fl.Field().String())
	})

	validate.RegisterValidation("password_rule", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	validate.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		return IsMonth(fl.Field().String())
	})
}

// IsUsername reports whether name is 2-10 letters or digits.
func IsUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// IsStrongPassword reports whether pw is 8-16 characters with at least one
// upper case letter, one lower case letter and one digit.
func IsStrongPassword(pw string) bool {
	if n := len([]rune(pw)); n < 8 || n > 16 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// IsMonth reports whether s names a calendar month in English.
func IsMonth(s string) bool {
	return months[strings.ToLower(strings.TrimSpace(s))]
}

// Validate checks a request struct and returns one message per invalid JSON
// field, or nil when the struct is valid.
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

var fixedMessages = map[string]string{
	"required":      "This field is required",
	"email":         "Invalid email format",
	"url":           "Invalid URL format",
	"uuid":          "Invalid id",
	"username":      "Name must be 2-10 letters or digits",
	"password_rule": "Password must be 8-16 characters with upper case, lower case and a digit",
	"month":         "Invalid month",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return "Value is too short (min: " + fe.Param() + ")"
	case "max":
		return "Value is too long (max: " + fe.Param() + ")"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "gte":
		return "Value must be at least " + fe.Param()
	case "lte":
		return "Value must be at most " + fe.Param()
	case "gtfield":
		return "Value must be after " + fe.Param()
	}
	return "Invalid value"
}

// ValidateVar checks a single value against a tag list, e.g. "required,email".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
