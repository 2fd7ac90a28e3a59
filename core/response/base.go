package response

import (
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// Render executes resp and falls back to a plain 500 if it fails.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return Bytes([]byte(content), "text/plain; charset=utf-8", status)
}

// HTML creates a text/html response from a pre-rendered string.
func HTML(content string, status int) handler.Response {
	return Bytes([]byte(content), "text/html; charset=utf-8", status)
}

// Bytes creates a response with custom content type and status code.
// A zero status means 200 OK.
func Bytes(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}
