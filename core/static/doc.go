// Package static serves embedded assets such as stylesheets.
//
//	//go:embed assets
//	var assets embed.FS
//
//	r.Get("/static/*", static.FS[*router.Context](assets,
//		static.WithSubFS("assets"),
//		static.WithStripPrefix("/static"),
//		static.WithMaxAge(24*time.Hour),
//	))
//
// Directory listings are never served; a directory answers only when it has
// an index.html.
package static
