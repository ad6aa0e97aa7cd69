package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

// Init configures the global validator used by Gin's binding.
// Errors use JSON field names; "role" checks a library role name and "pwd"
// enforces the minimum password length the realm policy starts from.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8,max=128")
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := entity.ParseUserRole(fl.Field().String())
			return err == nil
		})
	}
}

// ToDetails converts binding errors into a map[field]message for the error
// envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.EOF) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "pwd":
		return "must be between 8 and 128 characters"
	case "role":
		return "must be one of STUDENT, TEACHER, LIBRARIAN, ADMIN"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "uuid":
		return "must be a valid UUID"
	}
	return "is invalid"
}
