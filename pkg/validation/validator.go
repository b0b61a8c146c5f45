package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in error details.
// - Registers domain validations: hhmm (24-hour time), weekday,
//   consultation_method, consultation_type, gender, account_role.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8")

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return entity.ValidClockTime(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return entity.ValidWeekday(fl.Field().String())
	})
	_ = v.RegisterValidation("consultation_method", func(fl validator.FieldLevel) bool {
		return entity.ValidConsultationMethod(fl.Field().String())
	})
	_ = v.RegisterValidation("consultation_type", func(fl validator.FieldLevel) bool {
		return entity.ValidConsultationType(fl.Field().String())
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return entity.ValidGender(fl.Field().String())
	})
	_ = v.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		return entity.ValidRole(fl.Field().String())
	})
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the API error details block.
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
	case "uuid":
		return "must be a valid UUID"
	case "pwd", "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return "must be one of: " + param
	case "datetime":
		return "must match format " + param
	case "hhmm":
		return "must be a 24-hour HH:MM time"
	case "weekday":
		return "must be a weekday name (Monday..Sunday)"
	case "consultation_method":
		return "must be one of: Online, In-Person, Phone"
	case "consultation_type":
		return "must be one of: online, in-person, phone"
	case "gender":
		return "must be one of: Male, Female, Other, Prefer not to say"
	case "account_role":
		return "must be one of: consumer, practitioner"
	case "dive":
		return "contains an invalid element"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
