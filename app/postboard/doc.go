// Package postboard wires the posts and comments site: account and content
// services, the session cookie transport, HTML views and the HTTP routes.
//
// Identity is resolved once per request by the session middleware from the
// "auth_session" cookie. Handlers read it with Context.Identity and never
// re-validate the cookie themselves. Forms post back and redirect with 303;
// notices travel to the next page in an encrypted flash cookie.
//
//	app, err := postboard.NewApp(
//		postboard.WithLogger(log),
//		postboard.WithStores(stores),
//	)
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx)
package postboard
