package views

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assets embed.FS

// Assets returns the stylesheet and other static files, served under /static.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
