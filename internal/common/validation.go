package common

import (
	"fmt"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// FieldError pinpoints a single offending field in a request payload using a
// JSON-style path such as "items[2].quantity".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError wraps field errors into the structural-error envelope.
// Structural errors abort the request before any business logic runs.
func NewValidationError(fields ...FieldError) *AppError {
	msg := "invalid request"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    fields,
	}
}

// IsValidation reports whether err is a structural validation error.
func IsValidation(err error) bool {
	app, ok := AsAppError(err)
	return ok && app.Code == CodeValidation
}

// ValidateStruct runs tag validation and converts failures into a structural
// validation error with field paths.
func ValidateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		if fields := TranslateValidationErrors(err); len(fields) > 0 {
			return NewValidationError(fields...)
		}
		return NewValidationError(FieldError{Field: "", Message: err.Error()})
	}
	return nil
}

// TranslateValidationErrors maps go-playground validation failures onto field
// paths relative to the request body.
func TranslateValidationErrors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: tagMessage(fe),
		})
	}
	return fields
}

// fieldPath turns a validator namespace ("TotalRequest.Items[2].Quantity")
// into a JSON path ("items[2].quantity"). The leading struct name is dropped.
func fieldPath(ns string) string {
	segments := strings.Split(ns, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = strings.ToLower(seg[:1]) + seg[1:]
	}
	return strings.Join(segments, ".")
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s items", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at most %s items", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
