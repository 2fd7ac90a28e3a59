package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/postboard/core/handler"
)

// mux adapts a chi router to typed handlers.
// Middlewares are compiled into each handler at registration time.
type mux[C handler.Context] struct {
	router       chi.Router
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		router:       chi.NewRouter(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			return any(NewContext(w, r, params)).(C)
		}
	}

	// Unmatched requests still pass through the router-level middlewares.
	m.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, handler.Chain(fail[C](ErrNotFound), m.middlewares...))
	})
	m.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, handler.Chain(fail[C](ErrMethodNotAllowed), m.middlewares...))
	})

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.router.ServeHTTP(w, r)
}

// serve runs a compiled handler and renders its response.
func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, h handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r, urlParams(r))

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", perr.value,
					"stack", string(perr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, perr)
		}
	}()

	resp := h(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(knownMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates an inline router that shares routes with m and adds middlewares.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return m.derive(m.router, middlewares)
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a sub-router at pattern. It inherits m's middlewares.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	var sub *mux[C]
	m.router.Route(pattern, func(r chi.Router) {
		sub = m.derive(r, nil)
		fn(sub)
	})
	return sub
}

// Mount attaches an http.Handler, typically another Router, under pattern.
func (m *mux[C]) Mount(pattern string, h http.Handler) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	m.router.Mount(pattern, h)
}

// Routes returns all registered routes.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

func (m *mux[C]) derive(r chi.Router, extra []handler.Middleware[C]) *mux[C] {
	return &mux[C]{
		router:       r,
		middlewares:  append(slices.Clone(m.middlewares), extra...),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// handle registers fn; an empty method matches every method.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	m.hasRoutes = true

	h := handler.Chain(fn, m.middlewares...)
	hf := func(w http.ResponseWriter, r *http.Request) { m.serve(w, r, h) }

	if method == "" {
		m.router.HandleFunc(pattern, hf)
		return
	}
	m.router.MethodFunc(method, pattern, hf)
}

var knownMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func fail[C handler.Context](err error) handler.HandlerFunc[C] {
	return func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return err }
	}
}
