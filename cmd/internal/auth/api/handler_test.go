package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"authd/cmd/identity"
	"authd/cmd/internal/auth/session"
)

type fakeUserStore struct {
	users map[string]identity.User
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (identity.User, error) {
	u, ok := f.users[username]
	if !ok {
		return identity.User{}, identity.NotFoundError{Op: "fake.GetByUsername", Resource: "user"}
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (identity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return identity.User{}, identity.NotFoundError{Op: "fake.GetByID", Resource: "user"}
}

type fakeSessionStore struct {
	next     int
	sessions map[string]session.Session
	failing  bool
}

func (f *fakeSessionStore) Create(_ context.Context, now time.Time, userID int64, ttl time.Duration) (session.Session, error) {
	if f.failing {
		return session.Session{}, errors.New("backend down")
	}
	f.next++
	s := session.Session{
		ID:        "tok-" + strconv.Itoa(f.next),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, id string, now time.Time) (session.Session, error) {
	s, ok := f.sessions[id]
	if !ok || !s.ExpiresAt.After(now) {
		return session.Session{}, session.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range f.sessions {
		if !s.ExpiresAt.After(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func newTestMux(t *testing.T) (*http.ServeMux, *fakeSessionStore) {
	t.Helper()
	t.Setenv("AUTHD_BCRYPT_COST", "4")

	hash, err := identity.HashPassword("secret1!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users := &fakeUserStore{users: map[string]identity.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: hash},
	}}
	store := &fakeSessionStore{sessions: make(map[string]session.Session)}

	svc, err := session.NewService(session.DefaultConfig(), nil, users, store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	h, err := NewHandler(nil, LoadConfigFromEnv(), svc, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mux := http.NewServeMux()
	h.Register(mux)
	return mux, store
}

func postLogin(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sessionId" {
			return c
		}
	}
	t.Fatalf("no sessionId cookie in response")
	return nil
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	mux, _ := newTestMux(t)

	// Login.
	rec := postLogin(t, mux, `{"username":"alice","password":"secret1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var loginResp struct {
		Success bool `json:"success"`
		User    struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("login decode: %v", err)
	}
	if !loginResp.Success || loginResp.User.Username != "alice" || loginResp.User.ID != 1 {
		t.Fatalf("unexpected login body: %s", rec.Body.String())
	}
	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("session cookie must be HttpOnly + SameSite=Strict: %+v", cookie)
	}

	// Session check with the cookie.
	req := httptest.NewRequest(http.MethodGet, "/is-logged-in", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: cookie.Value})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("is-logged-in: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"isLoggedIn":true`) {
		t.Fatalf("expected isLoggedIn true: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Fatalf("expected alice identity: %s", rec.Body.String())
	}

	// Logout.
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: cookie.Value})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	cleared := sessionCookie(t, rec)
	if cleared.Value != "" || cleared.MaxAge != -1 {
		t.Fatalf("logout must clear the cookie: %+v", cleared)
	}

	// The old token is dead.
	req = httptest.NewRequest(http.MethodGet, "/is-logged-in", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: cookie.Value})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"isLoggedIn":false`) {
		t.Fatalf("expected isLoggedIn false: %s", rec.Body.String())
	}
}

func TestLogin_BadCredentialsShapeIsIdentical(t *testing.T) {
	mux, _ := newTestMux(t)

	wrongPw := postLogin(t, mux, `{"username":"alice","password":"wrong"}`)
	unknown := postLogin(t, mux, `{"username":"ghost","password":"anything"}`)

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("response shapes differ:\n%s\n%s", wrongPw.Body.String(), unknown.Body.String())
	}
	if !strings.Contains(wrongPw.Body.String(), "Invalid credentials") {
		t.Fatalf("expected generic message: %s", wrongPw.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	mux, _ := newTestMux(t)

	for _, body := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"password":"secret1!"}`,
		`not json`,
	} {
		rec := postLogin(t, mux, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestLogin_StoreFailureIs500(t *testing.T) {
	mux, store := newTestMux(t)
	store.failing = true

	rec := postLogin(t, mux, `{"username":"alice","password":"secret1!"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "backend down") {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
}

func TestLogout_WithoutCookieIsNoOp(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success: %s", rec.Body.String())
	}
}

func TestIsLoggedIn_WithoutCookie(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/is-logged-in", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success   bool   `json:"success"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", resp.Timestamp)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestMux(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/login"},
		{http.MethodGet, "/logout"},
		{http.MethodPost, "/is-logged-in"},
		{http.MethodPost, "/health"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tt.method, tt.path, rec.Code)
		}
	}
}
