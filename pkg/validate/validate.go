package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal: a string shopspring/decimal can parse, surrounding blanks allowed.
	v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	// date: a YYYY-MM-DD business date.
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	// postcode: digits only, empty allowed so required_with decides.
	v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// Struct checks obj against its validate tags. It returns nil when obj is
// valid.
func Struct(obj any) []FieldError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error(), Type: "invalid"}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: errorMsg(fe),
			Type:    fe.Tag(),
		})
	}
	return fieldErrors
}

func errorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_with":
		return "street, suburb, city and postcode must be supplied together"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "len":
		return "Value must be " + fe.Param() + " characters long"
	case "alpha":
		return "Value must contain letters only"
	case "oneof":
		return "Value must be one of: " + fe.Param()
	case "excludes":
		if fe.Param() == "," {
			return "Value must not contain commas"
		}
		return "Value must not contain " + fe.Param()
	case "postcode":
		return "Value must be a numeric postcode"
	case "decimal":
		return "Value must be a decimal number"
	case "date":
		return "Value must be a date in YYYY-MM-DD format"
	default:
		return "Invalid value"
	}
}
