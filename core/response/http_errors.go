package response

import "net/http"

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined HTTP errors with http.StatusText messages.
var (
	ErrBadRequest          = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized        = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound            = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict            = newHTTPError(http.StatusConflict, "conflict")
	ErrRequestTooLarge     = newHTTPError(http.StatusRequestEntityTooLarge, "request_too_large")
	ErrUnprocessableEntity = newHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestTooLarge,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}
