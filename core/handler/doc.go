// Package handler defines the request processing types shared by the router,
// middleware and response packages.
//
// A handler receives an application-defined Context and returns a Response.
// Rendering is deferred: the router calls the Response after the whole
// middleware chain has run, and any error it returns goes to the router's
// ErrorHandler.
//
//	func show(ctx *app.Context) handler.Response {
//		post, err := posts.Get(ctx, ctx.Param("postID"))
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.Templ(views.Post(post))
//	}
//
// Middleware wraps handlers and may stop the chain by returning its own Response:
//
//	func requireUser(next handler.HandlerFunc[*app.Context]) handler.HandlerFunc[*app.Context] {
//		return func(ctx *app.Context) handler.Response {
//			if !ctx.Identity().IsAuthenticated() {
//				return response.Redirect("/")
//			}
//			return next(ctx)
//		}
//	}
//
// Chain composes middleware in declaration order.
package handler
