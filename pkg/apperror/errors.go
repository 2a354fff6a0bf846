package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its message.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindNotFound            Kind = "not_found"
	KindDuplicateGeneration Kind = "duplicate_generation"
	KindNoBillableCustomers Kind = "no_billable_customers"
	KindPartialCompanyPay   Kind = "partial_company_payment"
	KindConflict            Kind = "conflict"
	KindUnauthorized        Kind = "unauthorized"
	KindForbidden           Kind = "forbidden"
	KindBadRequest          Kind = "bad_request"
	KindInternal            Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError of the same Kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// Common errors
var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrValidation          = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Validation failed"}
	ErrDuplicateGeneration = &AppError{Code: http.StatusConflict, Kind: KindDuplicateGeneration, Message: "Daily orders already generated for this date"}
	ErrNoBillableCustomers = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindNoBillableCustomers, Message: "No customer bills found for this company and period"}
	ErrPartialCompanyPay   = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindPartialCompanyPay, Message: "Company bills must be paid in full"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden           = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest          = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer      = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict            = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidCredentials  = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken        = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid or expired token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewDuplicateGenerationError reports that a date already has daily orders
func NewDuplicateGenerationError(date string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateGeneration,
		Message: fmt.Sprintf("Daily orders already generated for %s", date),
	}
}

// NewNoBillableCustomersError reports a company period without customer bills
func NewNoBillableCustomersError(year, month int) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindNoBillableCustomers,
		Message: fmt.Sprintf("No customer bills found for company in %04d-%02d", year, month),
	}
}

// NewPartialCompanyPaymentError reports a targeted company payment that does not clear the bill
func NewPartialCompanyPaymentError(amount, balance float64) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindPartialCompanyPay,
		Message: fmt.Sprintf("Company bills must be paid in full: amount %.2f does not match balance %.2f", amount, balance),
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
