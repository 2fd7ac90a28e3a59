package postboard

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/app/postboard/views"
	"github.com/dmitrymomot/postboard/core/binder"
	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/response"
)

var bindForm = binder.Form()

func (a *App) home(ctx *Context) handler.Response {
	feed, err := a.content.Feed(ctx)
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.FeedPage(a.page(ctx, ""), feed))
}

func (a *App) login(ctx *Context) handler.Response {
	var creds account.Credentials
	if err := bindForm(ctx.Request(), &creds); err != nil {
		return response.Error(response.ErrBadRequest)
	}

	res, err := a.accounts.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return response.Error(err)
	}
	return a.signIn(ctx, res, "Welcome back, "+res.User.Username)
}

func (a *App) register(ctx *Context) handler.Response {
	var creds account.Credentials
	if err := bindForm(ctx.Request(), &creds); err != nil {
		return response.Error(response.ErrBadRequest)
	}

	res, err := a.accounts.Register(ctx, creds.Username, creds.Password)
	if err != nil {
		return response.Error(err)
	}
	return a.signIn(ctx, res, "Welcome, "+res.User.Username)
}

// signIn issues res and sends the client home. As a local policy the session
// this browser already carried is ended first. Sessions held by other
// browsers stay valid.
func (a *App) signIn(ctx *Context, res account.Result, notice string) handler.Response {
	if prev := ctx.Identity(); prev.IsAuthenticated() {
		if err := a.accounts.Logout(ctx, prev.Session.ID); err != nil {
			a.logger.WarnContext(ctx, "failed to drop previous session",
				logger.Component("app"),
				logger.Error(err),
			)
		}
	}

	if err := a.auth.Issue(ctx, res.Token, res.Session); err != nil {
		return response.Error(err)
	}
	a.flash(ctx, notice)
	return response.RedirectSeeOther("/")
}

func (a *App) logout(ctx *Context) handler.Response {
	if err := a.accounts.Logout(ctx, ctx.Identity().Session.ID); err != nil {
		return response.Error(err)
	}
	a.auth.Clear(ctx)
	a.flash(ctx, "You have been logged out")
	return response.RedirectSeeOther("/")
}

func (a *App) deleteAccount(ctx *Context) handler.Response {
	if err := a.accounts.DeleteAccount(ctx, ctx.Identity().User.ID); err != nil {
		return response.Error(err)
	}
	a.auth.Clear(ctx)
	a.flash(ctx, "Your account has been deleted")
	return response.RedirectSeeOther("/")
}

func (a *App) loginRequired(ctx *Context) handler.Response {
	a.flash(ctx, "Please log in first")
	return response.RedirectSeeOther("/")
}

func (a *App) profile(ctx *Context) handler.Response {
	user, err := a.accounts.Profile(ctx, ctx.Param("username"))
	if errors.Is(err, account.ErrUserNotFound) {
		return response.RedirectPermanent("/")
	}
	if err != nil {
		return response.Error(err)
	}

	posts, err := a.content.UserPosts(ctx, user.ID)
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.ProfilePage(a.page(ctx, user.Username), user.Username, posts))
}

func (a *App) post(ctx *Context) handler.Response {
	post, comments, err := a.content.Post(ctx, ctx.Param("postID"))
	if errors.Is(err, content.ErrPostNotFound) {
		return response.RedirectPermanent("/")
	}
	if err != nil {
		return response.Error(err)
	}
	if post.Username != ctx.Param("username") {
		return response.RedirectPermanent(views.PostURL(post.Username, post.ID))
	}
	return response.Templ(views.PostPage(a.page(ctx, post.Title), post, comments))
}

func (a *App) newPost(ctx *Context) handler.Response {
	return response.Templ(views.NewPostPage(a.page(ctx, "New post"), content.PostInput{}))
}

func (a *App) createPost(ctx *Context) handler.Response {
	var in content.PostInput
	if err := bindForm(ctx.Request(), &in); err != nil {
		return response.Error(response.ErrBadRequest)
	}

	ident := ctx.Identity()
	post, err := a.content.CreatePost(ctx, ident.User.ID, in)
	if errors.Is(err, content.ErrValidation) {
		page := a.page(ctx, "New post")
		page.Error = userMessage(err)
		return response.TemplWithStatus(views.NewPostPage(page, in), http.StatusBadRequest)
	}
	if err != nil {
		return response.Error(err)
	}
	return response.RedirectSeeOther(views.PostURL(ident.User.Username, post.ID))
}

func (a *App) updatePost(ctx *Context) handler.Response {
	var in content.PostInput
	if err := bindForm(ctx.Request(), &in); err != nil {
		return response.Error(response.ErrBadRequest)
	}

	ident := ctx.Identity()
	post, err := a.content.UpdatePost(ctx, ident.User.ID, ctx.Param("postID"), in)
	if err != nil {
		return response.Error(err)
	}
	a.flash(ctx, "Post updated")
	return response.RedirectSeeOther(views.PostURL(post.Username, post.ID))
}

func (a *App) deletePost(ctx *Context) handler.Response {
	ident := ctx.Identity()
	if _, err := a.content.DeletePost(ctx, ident.User.ID, ctx.Param("postID")); err != nil {
		return response.Error(err)
	}
	a.flash(ctx, "Post deleted")
	return response.RedirectSeeOther(views.ProfileURL(ident.User.Username))
}

func (a *App) addComment(ctx *Context) handler.Response {
	var in content.CommentInput
	if err := bindForm(ctx.Request(), &in); err != nil {
		return response.Error(response.ErrBadRequest)
	}

	post, _, err := a.content.AddComment(ctx, ctx.Identity().User.ID, ctx.Param("postID"), in)
	if err != nil {
		return response.Error(err)
	}
	return response.RedirectSeeOther(views.PostURL(post.Username, post.ID))
}

type usernameResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (a *App) usernameByID(ctx *Context) handler.Response {
	id := ctx.Param("id")
	if id == "" {
		return response.JSON(usernameResponse{Message: "User ID is required"})
	}
	return response.JSON(usernameResponse{Success: true, Username: a.accounts.Username(ctx, id)})
}
