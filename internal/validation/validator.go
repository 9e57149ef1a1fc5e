// Package validation wraps go-playground/validator with messages suitable for
// showing next to a form field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Error is returned when a form fails local validation. It never reaches the network.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

// For returns the message for field, or "" when the field is valid.
func (e *Error) For(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// New builds a single-field validation error.
func New(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Tag: "custom", Message: message}}}
}

// As extracts a validation error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s using its `validate` tags. Field names in the result use
// the json tag name. An optional `label` tag supplies the human name.
func Struct(s any) *Error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	labels := labelsFor(s)
	out := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.Field()
		}
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translate(label, fe),
		})
	}
	return &Error{Fields: out}
}

func labelsFor(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	labels := make(map[string]string)
	if t == nil || t.Kind() != reflect.Struct {
		return labels
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if label := f.Tag.Get("label"); label != "" {
			labels[f.Name] = label
		}
	}
	return labels
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "Please enter a valid email",
}

var messageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"min":   "%s must be at least %s",
	"max":   "%s cannot exceed %s",
	"gte":   "%s must be at least %s",
	"lte":   "%s cannot exceed %s",
}

func translate(label string, fe validator.FieldError) string {
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		if fe.Tag() == "email" {
			return tmpl
		}
		return fmt.Sprintf(tmpl, label)
	}
	if tmpl, ok := messageWithParam[fe.Tag()]; ok {
		param := fe.Param()
		if fe.Tag() == "min" && fe.Kind() == reflect.String {
			param += " characters"
		}
		return fmt.Sprintf(tmpl, label, param)
	}
	return fmt.Sprintf("%s is invalid", label)
}
