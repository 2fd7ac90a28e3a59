package postboard

import (
	"net/http"

	"github.com/dmitrymomot/postboard/core/router"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/middleware"
)

// Context is the request context handed to postboard handlers.
type Context struct {
	*router.Context
}

// Identity returns who made the request. It is resolved once by the session
// middleware and does not change afterwards.
func (c *Context) Identity() session.Identity {
	return middleware.GetIdentity(c)
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}
