package rest_err

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type Causes struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewCause(field, message string) Causes {
	return Causes{Field: field, Message: message}
}

// NewBindingError converte o erro do ShouldBind* do gin em 400, com uma
// causa por campo quando o validator identifica o campo.
func NewBindingError(err error) *RestErr {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		causes := make([]Causes, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			causes = append(causes, NewCause(snakeCase(fe.Field()), describe(fe)))
		}
		return NewBadRequestValidationError("invalid request", causes)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewBadRequestValidationError("invalid request", []Causes{
			NewCause(typeErr.Field, "must be "+typeErr.Type.String()),
		})
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return NewBadRequestError("invalid request: malformed value " + strconv.Quote(numErr.Num))
	}

	return NewBadRequestError("invalid request body")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
