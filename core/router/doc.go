// Package router maps HTTP requests to typed handlers.
//
// Routing is delegated to go-chi; this package adds the generic handler
// model from core/handler on top: every route receives an application
// context, returns a deferred Response, and reports failures to a single
// error handler.
//
//	r := router.New[*app.Context](
//		router.WithContextFactory(app.NewContext),
//		router.WithErrorHandler(app.HandleError),
//		router.WithLogger(log),
//	)
//	r.Use(middleware.RequestID[*app.Context](), middleware.Session[*app.Context](transport))
//
//	r.Get("/", feed)
//	r.Get("/u/{username}", profile)
//	r.With(requireAuth).Post("/posts", createPost)
//
// Path parameters use chi syntax and are read with ctx.Param("username").
//
// # Errors
//
// Unmatched paths and methods, nil responses, errors returned by a Response
// and recovered panics all reach the error handler. Panics are wrapped in a
// PanicError carrying the stack. Errors that implement StatusCode() int
// select the status used by the default handler.
//
// Middlewares registered with Use run for every request on the router,
// including unmatched ones, and must be added before the first route.
package router
