package postboard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/app/postboard/views"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/response"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/core/validator"
)

const internalErrorMessage = "Something went wrong on our side"

// handleError maps domain failures to a status and a message safe to show.
// Only failures that end up as 5xx are logged as errors.
func (a *App) handleError(ctx *Context, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx, "request failed",
			logger.Component("app"),
			logger.Method(ctx.Request().Method),
			logger.Path(ctx.Request().URL.Path),
			logger.Error(err),
		)
	}

	if strings.HasPrefix(ctx.Request().URL.Path, "/api/") {
		response.Render(ctx, response.JSONWithStatus(usernameResponse{Message: message}, status))
		return
	}

	page := a.page(ctx, http.StatusText(status))
	page.Error = message
	response.Render(ctx, response.TemplWithStatus(views.ErrorPage(page, status), status))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, account.ErrValidation), errors.Is(err, content.ErrValidation):
		return http.StatusBadRequest, userMessage(err)
	case errors.Is(err, account.ErrUsernameTaken):
		return http.StatusConflict, "Username is already taken"
	case errors.Is(err, account.ErrInvalidCredentials), errors.Is(err, session.ErrInvalid):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, content.ErrForbidden):
		return http.StatusForbidden, "You can only change your own posts"
	case errors.Is(err, content.ErrPostNotFound):
		return http.StatusNotFound, "Post not found"
	}

	httpErr := response.AsHTTPError(err)
	if httpErr.Status < http.StatusInternalServerError {
		return httpErr.Status, httpErr.Message
	}
	return httpErr.Status, internalErrorMessage
}

// userMessage returns the first field problem of a validation failure.
func userMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && !verrs.IsEmpty() {
		return verrs[0].Field + " " + verrs[0].Message
	}
	return "Invalid input"
}
