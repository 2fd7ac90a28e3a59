package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts.
// Values stored with SetValue must be visible through both Value and Request().Context().
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
