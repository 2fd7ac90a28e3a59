// Package response builds handler.Response values.
//
// A Response is a deferred render: handlers return one and the router
// executes it after all middleware has run.
//
//	return response.Templ(views.Feed(posts))
//	return response.JSON(map[string]any{"success": true})
//	return response.RedirectSeeOther("/")
//	return response.Error(response.ErrNotFound)
//
// HTTPError carries a status and a machine-readable code. AsHTTPError maps
// arbitrary errors onto the predefined set without leaking their text, and
// ErrorHandler / JSONErrorHandler are ready-made router error handlers.
package response
