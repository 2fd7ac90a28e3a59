package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// Error returns a response that hands err to the router's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError.
// HTTPErrors pass through; errors with StatusCode() map to the matching
// predefined error; everything else becomes ErrInternalServerError.
// The original error is never copied into the message.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	if base, ok := httpErrorsByStatus[status]; ok {
		return base
	}
	return ErrInternalServerError
}

// ErrorHandler writes errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler writes errors as JSON documents.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
