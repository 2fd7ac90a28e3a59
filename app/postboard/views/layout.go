package views

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"
)

// Viewer describes who is looking at the page.
type Viewer struct {
	Authenticated bool
	Username      string
}

// Page carries data shared by every page.
type Page struct {
	Title  string
	Viewer Viewer
	Notice string
	Error  string
}

// Layout wraps body in the site chrome with the navigation bar and messages.
func Layout(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(page.Title)
		p.raw(`</title><link rel="stylesheet" href="/static/style.css"></head><body><header><nav><a href="/">Home</a>`)
		if page.Viewer.Authenticated {
			p.raw(` <a href="/posts/new">New post</a> <a`)
			p.attr("href", ProfileURL(page.Viewer.Username))
			p.raw(`>`)
			p.text(page.Viewer.Username)
			p.raw(`</a> <form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>`)
		}
		p.raw(`</nav></header><main>`)
		if page.Notice != "" {
			p.raw(`<p class="notice" role="status">`)
			p.text(page.Notice)
			p.raw(`</p>`)
		}
		if page.Error != "" {
			p.raw(`<p class="error" role="alert">`)
			p.text(page.Error)
			p.raw(`</p>`)
		}
		p.component(ctx, body)
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// ProfileURL is the canonical address of a user's profile.
func ProfileURL(username string) string {
	return "/u/" + url.PathEscape(username)
}

// PostURL is the canonical address of a post.
func PostURL(username, postID string) string {
	return ProfileURL(username) + "/" + url.PathEscape(postID)
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
