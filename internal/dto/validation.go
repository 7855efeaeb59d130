package dto

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators teaches v the request conventions used by this package:
// JSON field names in error paths, the rfc3339 tag, and Nullable fields.
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(interface{ validationValue() interface{} }); ok {
			return n.validationValue()
		}
		return nil
	}, Nullable[string]{}, Nullable[uint64]{})
}

// ParseTime parses a timestamp already checked by the rfc3339 rule.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// ParseOptionalTime parses value when present.
func ParseOptionalTime(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := ParseTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
