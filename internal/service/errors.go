package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// ValidationError несёт сообщение для клиента и сводится к ErrValidation через errors.Is
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct превращает ошибки validator в ValidationError с понятным текстом
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return newValidationError(jsonFieldName(fe) + " is required.")
	case "datetime":
		return newValidationError(jsonFieldName(fe) + " must be a date in YYYY-MM-DD format.")
	case "gte":
		return newValidationError(jsonFieldName(fe) + " must not be negative.")
	default:
		return newValidationError(jsonFieldName(fe) + " is invalid.")
	}
}

// NotFoundError - как ValidationError, но сводится к ErrNotFound
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

var (
	errDayNotFound   = &NotFoundError{Msg: "Day not found."}
	errEntryNotFound = &NotFoundError{Msg: "Entry not found."}
)
