package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes Gin's binding validator report JSON (or form) field names and
// registers the project's alias tags.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		RegisterAliases(v)
	}
}

// RegisterAliases adds the project's alias tags to v.
func RegisterAliases(v *validator.Validate) {
	v.RegisterAlias("pwd", "min=6")          // password minimum length
	v.RegisterAlias("uname", "min=3,max=32") // username length
}

// ToDetails converts binding errors into the field -> message map sent as error details.
// Tags without a dedicated message get a generic one.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			out[field] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "pwd":
		return "must be at least 6 characters long"
	case "uname":
		return "must be 3 to 32 characters long"
	}
	if p := fe.Param(); p != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), p)
	}
	return fmt.Sprintf("validation failed for '%s'", fe.Tag())
}
