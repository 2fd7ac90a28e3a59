// Package cookie writes and reads HTTP cookies with secure defaults.
//
// Every cookie gets Path=/, HttpOnly and SameSite=Lax unless overridden.
// Values can be stored in clear text (Set/Get) or encrypted with AES-256-GCM
// (SetEncrypted/GetEncrypted). Several secrets may be configured; the first
// encrypts, all of them are tried when decrypting, which allows rotation.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	err = m.Set(w, "theme", "dark", cookie.WithMaxAge(3600))
//	v, err := m.Get(r, "theme")
//	m.Delete(w, "theme")
//
// # Flash messages
//
// SetFlash stores a JSON value that GetFlash returns exactly once:
//
//	_ = m.SetFlash(w, "notice", "Post created")
//	var notice string
//	if err := m.GetFlash(w, r, "notice", &notice); err == nil {
//		// show notice
//	}
//
// # Configuration
//
// Config is populated from COOKIE_* environment variables. COOKIE_SECRETS is
// a comma-separated list.
//
// Cookies larger than 4KB are rejected with ErrCookieTooLarge.
package cookie
