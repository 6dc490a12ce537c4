package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind phân loại lỗi để handler map sang HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindReferentialIntegrity
	KindStorageUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReferentialIntegrity:
		return "referential_integrity"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "internal"
	}
}

// AppError is the typed failure every service returns to the HTTP layer.
// Two AppErrors match under errors.Is when their codes are equal, so a
// sentinel still matches after With/Wrap attach details.
type AppError struct {
	Kind    Kind
	Code    string // VD: "ARTICLE_NOT_FOUND"
	Message string
	Err     error
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying err as its cause
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage returns a copy of e with a more specific message
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// Validation builds an ad-hoc validation error, mostly for request binding
func Validation(code string, err error) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: err.Error(), Err: err}
}

// StorageUnavailable is returned when the database cannot be reached or a
// query exceeds its deadline.
var StorageUnavailable = New(KindStorageUnavailable, "STORAGE_UNAVAILABLE", "storage is temporarily unavailable")

// KindOf returns the kind of the first AppError in err's chain
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus converts error to HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindReferentialIntegrity:
		return http.StatusUnprocessableEntity
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the API error code, INTERNAL_ERROR for untyped errors
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

// PublicMessage hides internal details from clients
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "internal server error"
}
