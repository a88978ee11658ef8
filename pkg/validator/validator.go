package validator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/stockroom/pkg/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
}

// MaxBodyBytes caps request bodies decoded by ValidateRequest.
const MaxBodyBytes = 1 << 20

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map from
// JSON field path to a human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !isValidationErrors(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[fieldPath(e)] = formatFieldError(e)
	}
	return errs
}

// fieldPath drops the root struct name so nested fields read "items[0].article".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Must not be blank"
	case "calendardate":
		return "Must be a date in YYYY-MM-DD format"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s entries", e.Param())
		}
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s entries", e.Param())
		}
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "numeric":
		return "Must be a numeric value"
	case "alpha":
		return "Must contain only letters"
	case "alphanum":
		return "Must contain only letters and numbers"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an appropriate error response if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
