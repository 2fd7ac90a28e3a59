// Package sessiontransport carries session tokens over HTTP cookies.
//
// It bridges the transport-agnostic core/session package and HTTP:
//
//	sessions, _ := session.NewManager(store)
//	cookies, _ := cookie.New([]string{secret}, cookie.WithSecure(true))
//	transport := sessiontransport.NewCookie(sessions, cookies, "auth_session",
//		sessiontransport.WithLogger(log))
//
//	// Per request; never fails, degrades to anonymous.
//	ident := transport.Load(ctx)
//
//	// After login.
//	token, sess, _ := sessions.Create(ctx, user.ID)
//	_ = transport.Issue(ctx, token, sess)
//
//	// After logout.
//	transport.Clear(ctx)
//
// Load clears the cookie when the token no longer resolves to a live
// session, reissues it when the session was renewed, and leaves it alone
// when the store could not be reached.
package sessiontransport
