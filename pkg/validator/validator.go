package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := fieldPath(e)
			name := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = name + " is required"
			case "email":
				errors[field] = name + " must be a valid email address"
			case "min":
				errors[field] = name + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = name + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = name + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = name + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = name + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
			case "uuid", "uuid4":
				errors[field] = name + " must be a valid UUID"
			default:
				errors[field] = name + " is invalid"
			}
		}
	}

	return errors
}

// fieldPath drops the top-level struct name so nested fields read as "role.weight".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}
