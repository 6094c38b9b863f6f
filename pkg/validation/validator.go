package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// FieldViolation describes one failed rule on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// New returns a standalone validator configured like Gin's, for validating
// inputs outside of request binding.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	v.RegisterAlias("pwd", "min=6,bcryptlen")
	v.RegisterAlias("objectid", "len=24,hexadecimal")
}

// Violations converts validation/binding errors into a list of per-field
// violations suitable for the API error body. Every failed field is reported.
func Violations(err error) []FieldViolation {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return []FieldViolation{{Field: ute.Field, Tag: "type", Message: "must be of type " + ute.Type.String()}}
	}
	if errors.As(err, &se) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldViolation{{Field: "payload", Message: "invalid json"}}
	}
	if errors.Is(err, io.EOF) {
		return []FieldViolation{{Field: "payload", Message: "is required"}}
	}
	// json.Decoder with DisallowUnknownFields
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return []FieldViolation{{Field: strings.Trim(name, `"`), Tag: "unknown", Message: "is not allowed"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldViolation{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Value:   valueString(fe),
				Message: formatFieldError(fe),
			})
		}
		return out
	}

	// Fallback
	return []FieldViolation{{Field: "payload", Message: "invalid payload"}}
}

// passwords are never echoed back
func valueString(fe validator.FieldError) string {
	if strings.Contains(strings.ToLower(fe.Field()), "password") {
		return ""
	}
	if s, ok := fe.Value().(string); ok {
		return s
	}
	return ""
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "pwd":
		if fe.ActualTag() == "bcryptlen" {
			return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
		}
		return "must be at least 6 characters long"
	case "objectid":
		return "must be a valid id"
	case "hexadecimal":
		return "must be hexadecimal"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "url":
		return "must be a valid URL"
	case "numeric":
		return "must be numeric"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
