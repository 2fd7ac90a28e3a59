package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/postboard/core/handler"
)

// Templ creates an HTML response using a templ component with 200 OK status.
// The component is rendered with the request context, so it can read
// request-scoped values such as the current identity.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus creates an HTML response using a templ component with custom status code.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if component == nil {
			return fmt.Errorf("templ: nil component")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}
