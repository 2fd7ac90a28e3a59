package postboard_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/app/postboard"
	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/memstore"
	"github.com/dmitrymomot/postboard/core/health"
	"github.com/dmitrymomot/postboard/core/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// plainHasher keeps handler tests fast; hashing is covered in pkg/password.
type plainHasher struct{}

func (plainHasher) Hash(_ context.Context, pw string) (string, error) { return "plain:" + pw, nil }
func (plainHasher) Verify(_ context.Context, hash, pw string) bool   { return hash == "plain:"+pw }

type site struct {
	t      *testing.T
	srv    *httptest.Server
	store  *memstore.Store
	client *http.Client
}

func newSite(t *testing.T, opts ...postboard.AppOption) *site {
	t.Helper()

	cfg := postboard.DefaultConfig()
	cfg.Cookie.Secrets = testSecret

	store := memstore.New()
	app, err := postboard.NewApp(append([]postboard.AppOption{
		postboard.WithConfig(cfg),
		postboard.WithHasher(plainHasher{}),
		postboard.WithStores(postboard.Stores{
			Users:    store,
			Sessions: session.NewMemoryStore(account.Resolver(store)),
			Posts:    store,
			Comments: store,
		}),
	}, opts...)...)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	return &site{t: t, srv: srv, store: store, client: newClient(t)}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *site) do(c *http.Client, method, path string, form url.Values) (*http.Response, string) {
	s.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.srv.URL+path, body)
	require.NoError(s.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, string(b)
}

func (s *site) get(path string) (*http.Response, string) {
	return s.do(s.client, http.MethodGet, path, nil)
}

func (s *site) post(path string, form url.Values) (*http.Response, string) {
	return s.do(s.client, http.MethodPost, path, form)
}

func (s *site) register(username, password string) {
	s.t.Helper()
	resp, _ := s.post("/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(s.t, http.StatusSeeOther, resp.StatusCode)
}

func (s *site) sessionCookie() *http.Cookie {
	u, _ := url.Parse(s.srv.URL)
	for _, c := range s.client.Jar.Cookies(u) {
		if c.Name == "auth_session" {
			return c
		}
	}
	return nil
}

func TestRegisterLoginLogout(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	resp, _ := s.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	require.NotNil(t, s.sessionCookie())

	_, body := s.get("/")
	assert.Contains(t, body, "Signed in as <strong>alice</strong>")
	assert.Contains(t, body, "Welcome, alice")

	_, body = s.get("/")
	assert.NotContains(t, body, "Welcome, alice", "flash is shown once")

	resp, _ = s.post("/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Nil(t, s.sessionCookie())

	_, body = s.get("/")
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "You have been logged out")

	resp, _ = s.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.get("/")
	assert.Contains(t, body, "Welcome back, alice")
}

func TestLoggedOutTokenIsRejected(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")

	stolen := s.sessionCookie()
	require.NotNil(t, stolen)
	resp, _ := s.post("/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, s.srv.URL+"/", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: stolen.Name, Value: stolen.Value})
	raw, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	b, _ := io.ReadAll(raw.Body)

	assert.Contains(t, string(b), `action="/login"`)
	var cleared bool
	for _, c := range raw.Cookies() {
		if c.Name == "auth_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "invalid session cookie is cleared")
}

func TestReloginInvalidatesPreviousSession(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")
	first := s.sessionCookie()

	resp, _ := s.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	second := s.sessionCookie()
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)

	other := newClient(t)
	u, _ := url.Parse(s.srv.URL)
	other.Jar.SetCookies(u, []*http.Cookie{{Name: "auth_session", Value: first.Value}})
	_, body := s.do(other, http.MethodGet, "/", nil)
	assert.Contains(t, body, `action="/login"`)

	laptop := newClient(t)
	resp, _ = s.do(laptop, http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.get("/")
	assert.Contains(t, body, "Signed in as <strong>alice</strong>", "a login elsewhere keeps this session")
}

func TestProductionSessionCookieIsSecure(t *testing.T) {
	t.Parallel()

	cfg := postboard.DefaultConfig()
	cfg.Cookie.Secrets = testSecret
	cfg.Env = "production"
	s := newSite(t, postboard.WithConfig(cfg))

	resp, _ := s.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var auth *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "auth_session" {
			auth = c
		}
	}
	require.NotNil(t, auth)
	assert.True(t, auth.Secure)
	assert.True(t, auth.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, auth.SameSite)
	assert.Equal(t, "/", auth.Path)
}

func TestDevelopmentSessionCookieIsNotSecure(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	resp, _ := s.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "auth_session" {
			assert.False(t, c.Secure)
			return
		}
	}
	t.Fatal("auth_session cookie not set")
}

func TestAuthFailures(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")

	tests := []struct {
		name   string
		path   string
		form   url.Values
		status int
		text   string
	}{
		{"short username", "/register", url.Values{"username": {"al"}, "password": {"secret1"}}, http.StatusBadRequest, "username must be at least 3 characters long"},
		{"bad characters", "/register", url.Values{"username": {"al ice!"}, "password": {"secret1"}}, http.StatusBadRequest, "username must match"},
		{"short password", "/register", url.Values{"username": {"bob"}, "password": {"12345"}}, http.StatusBadRequest, "password must be at least 6 characters long"},
		{"taken", "/register", url.Values{"username": {"alice"}, "password": {"secret1"}}, http.StatusConflict, "Username is already taken"},
		{"wrong password", "/login", url.Values{"username": {"alice"}, "password": {"wrong-password"}}, http.StatusUnauthorized, "Incorrect username or password"},
		{"short password login", "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, http.StatusUnauthorized, "Incorrect username or password"},
		{"unknown user", "/login", url.Values{"username": {"nobody"}, "password": {"secret1"}}, http.StatusUnauthorized, "Incorrect username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(newClient(t), http.MethodPost, tt.path, tt.form)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.text)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	for _, path := range []string{"/posts", "/logout", "/account/delete", "/posts/p1/comments"} {
		resp, _ := s.post(path, url.Values{"title": {"x"}, "content": {"y"}, "text": {"z"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}

	resp, _ := s.get("/posts/new")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestPostsAndComments(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")

	resp, body := s.post("/posts", url.Values{"title": {""}, "content": {"body"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "title is required")

	resp, _ = s.post("/posts", url.Values{"title": {"Hello <b>"}, "content": {"World"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	postURL := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(postURL, "/u/alice/"), postURL)
	postID := strings.TrimPrefix(postURL, "/u/alice/")

	resp, body = s.get(postURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello &lt;b&gt;")
	assert.Contains(t, body, `action="/posts/`+postID+`/edit"`)

	resp, _ = s.get("/u/bob/" + postID)
	assert.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, postURL, resp.Header.Get("Location"))

	resp, _ = s.get("/u/alice/missing")
	assert.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = s.post("/posts/"+postID+"/comments", url.Values{"text": {"first!"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, postURL, resp.Header.Get("Location"))

	_, body = s.get("/")
	assert.Contains(t, body, "first!")

	resp, _ = s.post("/posts/"+postID+"/edit", url.Values{"title": {"Edited"}, "content": {"Again"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.get("/u/alice")
	assert.Contains(t, body, "Edited")

	bob := newClient(t)
	resp, _ = s.do(bob, http.MethodPost, "/register", url.Values{"username": {"bob"}, "password": {"secret2"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, body = s.do(bob, http.MethodPost, "/posts/"+postID+"/delete", url.Values{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "You can only change your own posts")

	resp, _ = s.post("/posts/"+postID+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/u/alice", resp.Header.Get("Location"))

	resp, _ = s.get(postURL)
	assert.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
}

func TestProfileRedirectsUnknownUser(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	resp, _ := s.get("/u/nobody")
	assert.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")

	resp, _ := s.post("/account/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Nil(t, s.sessionCookie())

	_, err := s.store.UserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, account.ErrUserNotFound)

	_, body := s.get("/")
	assert.Contains(t, body, "Your account has been deleted")
}

func TestUsernameByIDAPI(t *testing.T) {
	t.Parallel()
	s := newSite(t)
	s.register("alice", "secret1")
	user, err := s.store.UserByUsername(context.Background(), "alice")
	require.NoError(t, err)

	decode := func(body string) map[string]any {
		var out map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		return out
	}

	resp, body := s.get("/api/username_by_id/" + user.ID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"success": true, "username": "alice"}, decode(body))

	_, body = s.get("/api/username_by_id/unknown")
	assert.Equal(t, map[string]any{"success": true, "username": "Anonymous"}, decode(body))

	_, body = s.get("/api/username_by_id/")
	assert.Equal(t, map[string]any{"success": false, "message": "User ID is required"}, decode(body))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newSite(t)
	resp, body := s.get("/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", body)

	failing := newSite(t, postboard.WithHealthChecks(health.Check{
		Name:  "db",
		Probe: func(context.Context) error { return assert.AnError },
	}))
	resp, _ = failing.get("/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	resp, _ := s.get("/")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"), "no HSTS outside production")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestStylesheet(t *testing.T) {
	t.Parallel()
	s := newSite(t)

	resp, body := s.get("/static/style.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, ".notice")
}
