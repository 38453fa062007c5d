package requests

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnsupportedFormat      = errors.New("unsupported dataset format")
	ErrUnsupportedDatasetType = errors.New("unsupported dataset type")
	ErrUnknownQueryKey        = errors.New("query key is not accepted by this request")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("param"); name != "" {
			return name
		}
		return field.Name
	})
	for tag, fn := range map[string]validator.Func{
		"rws_format":       oneOfFold(FormatCSV, FormatXML),
		"rws_dataset_type": oneOfFold(DatasetTypeRegular, DatasetTypeRaw),
		"rws_include":      oneOf(IncludeInactive, IncludeDeleted, IncludeInactiveAndDeleted),
		"rws_subject_key":  oneOf(SubjectKeyName, SubjectKeyUUID),
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

func oneOfFold(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return true
			}
		}
		return false
	}
}

func oneOf(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

// ValidationError reports every invalid input of one descriptor construction.
type ValidationError struct {
	Request string
	Errors  []FieldError
}

// FieldError describes one invalid input.
type FieldError struct {
	Field   string
	Message string
	Value   string
	tag     string
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fe.Message)
	}
	return fmt.Sprintf("invalid %s request: %s", e.Request, strings.Join(messages, "; "))
}

// Is lets callers match enumerated-input failures with errors.Is.
func (e *ValidationError) Is(target error) bool {
	for _, fe := range e.Errors {
		switch {
		case target == ErrUnsupportedFormat && fe.tag == "rws_format":
			return true
		case target == ErrUnsupportedDatasetType && fe.tag == "rws_dataset_type":
			return true
		}
	}
	return false
}

func check(request string, params any) error {
	if err := validate.Struct(params); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return newValidationError(request, errs)
		}
		return err
	}
	return nil
}

func newValidationError(request string, errs validator.ValidationErrors) *ValidationError {
	fieldErrors := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		value := fmt.Sprintf("%v", err.Value())
		fieldErrors = append(fieldErrors, FieldError{
			Field:   err.Field(),
			Message: errorMessage(err.Field(), err.Tag(), err.Param(), value),
			Value:   value,
			tag:     err.Tag(),
		})
	}
	return &ValidationError{Request: request, Errors: fieldErrors}
}

func errorMessage(field, tag, param, value string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "rws_format":
		return fmt.Sprintf("%s is expected to be one of csv or xml, %q is not valid", field, value)
	case "rws_dataset_type":
		return fmt.Sprintf("%s is expected to be one of regular or raw, %q is not valid", field, value)
	case "rws_include":
		return fmt.Sprintf("%s is expected to be one of inactive, deleted or inactiveAndDeleted, %q is not valid", field, value)
	case "rws_subject_key":
		return fmt.Sprintf("%s is expected to be one of SubjectName or SubjectUUID, %q is not valid", field, value)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed on %s", field, tag)
	}
}
