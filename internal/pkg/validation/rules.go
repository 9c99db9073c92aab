// Package validation holds the custom binding tags shared by the request DTOs.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings made only of whitespace
const TagNotBlank = "notblank"

// NotBlank passes for non-string fields and for strings with at least one
// non-whitespace character.
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// Register installs the custom tags on v
func Register(v *validator.Validate) error {
	return v.RegisterValidation(TagNotBlank, NotBlank)
}
