package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// The value is encoded straight to the writer.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
