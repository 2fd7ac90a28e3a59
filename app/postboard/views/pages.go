package views

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/postboard/app/postboard/content"
)

// FeedPage is the home page: auth forms or account controls, all posts and
// the latest comments.
func FeedPage(page Page, feed content.Feed) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		if page.Viewer.Authenticated {
			p.raw(`<section class="account"><p>Signed in as <strong>`)
			p.text(page.Viewer.Username)
			p.raw(`</strong></p><form method="post" action="/account/delete">`)
			p.raw(`<button type="submit">Delete account</button></form></section>`)
		} else {
			authForm(p, "/login", "Log in")
			authForm(p, "/register", "Register")
		}

		p.raw(`<section class="posts"><h2>Posts</h2>`)
		postList(p, feed.Posts)
		p.raw(`</section><section class="comments"><h2>Recent comments</h2>`)
		if len(feed.Comments) == 0 {
			p.raw(`<p>No comments yet.</p>`)
		}
		p.raw(`<ul>`)
		for _, c := range feed.Comments {
			p.raw(`<li><a`)
			p.attr("href", ProfileURL(c.Username))
			p.raw(`>`)
			p.text(c.Username)
			p.raw(`</a>: `)
			p.text(c.Text)
			p.raw(`</li>`)
		}
		p.raw(`</ul></section>`)
		return p.err
	}))
}

// ProfilePage lists the posts of one user.
func ProfilePage(page Page, username string, posts []content.Post) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<h1>`)
		p.text(username)
		p.raw(`</h1>`)
		postList(p, posts)
		return p.err
	}))
}

// PostPage shows a post with its comments. Owners get edit and delete forms;
// signed in visitors get the comment form.
func PostPage(page Page, post content.Post, comments []content.Comment) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<article><h1>`)
		p.text(post.Title)
		p.raw(`</h1><p class="meta">by <a`)
		p.attr("href", ProfileURL(post.Username))
		p.raw(`>`)
		p.text(post.Username)
		p.raw(`</a> on `)
		p.text(timestamp(post.CreatedAt))
		p.raw(`</p><div class="content">`)
		p.text(post.Content)
		p.raw(`</div></article>`)

		if page.Viewer.Authenticated && page.Viewer.Username == post.Username {
			action := "/posts/" + post.ID
			postForm(p, action+"/edit", "Save", content.PostInput{Title: post.Title, Content: post.Content})
			p.raw(`<form method="post"`)
			p.attr("action", action+"/delete")
			p.raw(`><button type="submit">Delete post</button></form>`)
		}

		p.raw(`<section class="comments"><h2>Comments</h2><ul>`)
		for _, c := range comments {
			p.raw(`<li><strong>`)
			p.text(c.Username)
			p.raw(`</strong> `)
			p.text(c.Text)
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
		if page.Viewer.Authenticated {
			p.raw(`<form method="post"`)
			p.attr("action", "/posts/"+post.ID+"/comments")
			p.raw(`><textarea name="text" required maxlength="2000"></textarea>`)
			p.raw(`<button type="submit">Comment</button></form>`)
		}
		p.raw(`</section>`)
		return p.err
	}))
}

// NewPostPage shows the post form, refilled with in after a failed attempt.
func NewPostPage(page Page, in content.PostInput) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<h1>New post</h1>`)
		postForm(p, "/posts", "Publish", in)
		return p.err
	}))
}

// ErrorPage renders a failure with its status.
func ErrorPage(page Page, status int) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<h1>`)
		p.text(strconv.Itoa(status) + " " + http.StatusText(status))
		p.raw(`</h1><p><a href="/">Back to the feed</a></p>`)
		return p.err
	}))
}

func authForm(p *writer, action, label string) {
	p.raw(`<form method="post"`)
	p.attr("action", action)
	p.raw(`><h2>`)
	p.text(label)
	p.raw(`</h2><label>Username <input name="username" required minlength="3" maxlength="31"></label>`)
	p.raw(`<label>Password <input type="password" name="password" required minlength="6" maxlength="255"></label>`)
	p.raw(`<button type="submit">`)
	p.text(label)
	p.raw(`</button></form>`)
}

func postForm(p *writer, action, label string, in content.PostInput) {
	p.raw(`<form method="post"`)
	p.attr("action", action)
	p.raw(`><label>Title <input name="title" required maxlength="200"`)
	p.attr("value", in.Title)
	p.raw(`></label><label>Content <textarea name="content" required>`)
	p.text(in.Content)
	p.raw(`</textarea></label><button type="submit">`)
	p.text(label)
	p.raw(`</button></form>`)
}

func postList(p *writer, posts []content.Post) {
	if len(posts) == 0 {
		p.raw(`<p>No posts yet.</p>`)
		return
	}
	p.raw(`<ul>`)
	for _, post := range posts {
		p.raw(`<li><a`)
		p.attr("href", PostURL(post.Username, post.ID))
		p.raw(`>`)
		p.text(post.Title)
		p.raw(`</a> by `)
		p.text(post.Username)
		p.raw(` <time>`)
		p.text(timestamp(post.CreatedAt))
		p.raw(`</time></li>`)
	}
	p.raw(`</ul>`)
}
