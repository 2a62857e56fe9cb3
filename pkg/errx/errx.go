package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Error is the application error carried across layer boundaries.
// Handlers return it as-is; the global Fiber error handler converts it
// into an HTTP response using HTTPStatus and Code.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"status"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key/value pair for diagnostics. Returns the same
// error so calls can be chained.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithError attaches an underlying cause.
func (e *Error) WithError(err error) *Error {
	e.Err = err
	return e
}

// New creates an ad-hoc error without going through a registry.
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: defaultStatus(t),
	}
}

// Wrap wraps an underlying error with a message and type.
func Wrap(err error, message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: defaultStatus(t),
		Err:        err,
	}
}

func defaultStatus(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
