package response

import (
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// Redirect creates a 302 Found response.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, used after form posts.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectPermanent creates a 308 Permanent Redirect response.
func RedirectPermanent(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusPermanentRedirect)
}

// RedirectWithStatus creates a redirect with any 3xx status.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, status)
		return nil
	}
}
