package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

var (
	ErrNoContextFactory = errors.New("router: context type needs WithContextFactory")
	ErrNilResponse      = errors.New("router: handler returned nil response")
	ErrInvalidMethod    = errors.New("router: invalid method")
	ErrNilRouter        = errors.New("router: nil handler mounted")
	ErrNilSubrouter     = errors.New("router: nil route function")
	ErrInvalidPattern   = errors.New("router: pattern must start with /")

	ErrNotFound         = statusError{errors.New("not found"), http.StatusNotFound}
	ErrMethodNotAllowed = statusError{errors.New("method not allowed"), http.StatusMethodNotAllowed}
)

type statusError struct {
	error
	status int
}

func (e statusError) StatusCode() int { return e.status }

func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if rw, ok := w.(*responseWriter); ok && rw.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(w, err.Error(), status)
}

// PanicError is what the error handler receives for a recovered panic.
// It unwraps to the panic value when that value is an error.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

func (e *panicError) Unwrap() error {
	err, _ := e.value.(error)
	return err
}
