package postboard

import (
	"errors"

	"github.com/dmitrymomot/postboard/app/postboard/views"
	"github.com/dmitrymomot/postboard/core/cookie"
	"github.com/dmitrymomot/postboard/core/logger"
)

const flashNotice = "notice"

// page collects the data every view needs and consumes the pending flash.
func (a *App) page(ctx *Context, title string) views.Page {
	if title == "" {
		title = a.config.AppName
	} else {
		title += " | " + a.config.AppName
	}

	ident := ctx.Identity()
	page := views.Page{
		Title: title,
		Viewer: views.Viewer{
			Authenticated: ident.IsAuthenticated(),
			Username:      ident.User.Username,
		},
	}

	err := a.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashNotice, &page.Notice)
	if err != nil && !errors.Is(err, cookie.ErrCookieNotFound) {
		a.logger.DebugContext(ctx, "dropping unreadable flash", logger.Component("app"), logger.Error(err))
	}
	return page
}

// flash leaves a notice for the next page view.
func (a *App) flash(ctx *Context, notice string) {
	if err := a.cookies.SetFlash(ctx.ResponseWriter(), flashNotice, notice); err != nil {
		a.logger.WarnContext(ctx, "failed to set flash", logger.Component("app"), logger.Error(err))
	}
}
