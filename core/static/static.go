package static

import (
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/postboard/core/handler"
)

type config struct {
	stripPrefix string
	subPath     string
	maxAge      time.Duration
}

// Option configures FS.
type Option func(*config)

// WithStripPrefix removes prefix from the URL path before the file lookup.
func WithStripPrefix(prefix string) Option {
	return func(c *config) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves only the given subdirectory of the filesystem.
func WithSubFS(path string) Option {
	return func(c *config) {
		c.subPath = path
	}
}

// WithMaxAge sets a public Cache-Control max-age on served files.
func WithMaxAge(d time.Duration) Option {
	return func(c *config) {
		c.maxAge = d
	}
}

// FS returns a handler serving files from fsys. It panics at startup when the
// sub-path is invalid or the filesystem root cannot be opened.
func FS[C handler.Context](fsys fs.FS, opts ...Option) handler.HandlerFunc[C] {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		fsys = sub
	}
	if _, err := fsys.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	var h http.Handler = http.FileServer(noListing{fs: http.FS(fsys)})
	if cfg.stripPrefix != "" {
		h = http.StripPrefix(cfg.stripPrefix, h)
	}
	cacheControl := ""
	if cfg.maxAge > 0 {
		cacheControl = "public, max-age=" + strconv.Itoa(int(cfg.maxAge.Seconds()))
	}

	return func(C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if cacheControl != "" {
				w.Header().Set("Cache-Control", cacheControl)
			}
			h.ServeHTTP(w, r)
			return nil
		}
	}
}

// noListing hides directories that have no index.html.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(path string) (http.File, error) {
	f, err := n.fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if s.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		idx, err := n.fs.Open(index)
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = idx.Close()
	}

	return f, nil
}
