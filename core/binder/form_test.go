package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/core/binder"
)

type postForm struct {
	Title    string   `form:"title"`
	Content  string   `form:"content"`
	Age      int      `form:"age"`
	Public   bool     `form:"public"`
	Tags     []string `form:"tags"`
	Internal string   `form:"-"`
	Untagged string
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		r := formRequest(url.Values{
			"title":    {"  Hello  "},
			"content":  {"body"},
			"age":      {"42"},
			"public":   {"on"},
			"tags":     {"a", "b"},
			"Internal": {"x"},
			"Untagged": {"y"},
		})

		var f postForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, postForm{Title: "Hello", Content: "body", Age: 42, Public: true, Tags: []string{"a", "b"}}, f)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "From multipart"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var f postForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, "From multipart", f.Title)
	})

	t.Run("raw option keeps whitespace", func(t *testing.T) {
		t.Parallel()

		var f struct {
			Password string `form:"password,raw"`
		}
		require.NoError(t, binder.Form()(formRequest(url.Values{"password": {" secret "}}), &f))
		assert.Equal(t, " secret ", f.Password)
	})

	t.Run("ignores query string", func(t *testing.T) {
		t.Parallel()

		r := formRequest(url.Values{"content": {"c"}})
		r.URL.RawQuery = "title=injected"

		var f postForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Empty(t, f.Title)
	})

	t.Run("bad integer", func(t *testing.T) {
		t.Parallel()

		var f postForm
		err := binder.Form()(formRequest(url.Values{"age": {"old"}}), &f)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
		var f postForm
		assert.ErrorIs(t, binder.Form()(r, &f), binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")
		var f postForm
		assert.ErrorIs(t, binder.Form()(r, &f), binder.ErrUnsupportedMediaType)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		var f postForm
		assert.ErrorIs(t, binder.Form()(formRequest(url.Values{}), f), binder.ErrInvalidTarget)
	})
}
