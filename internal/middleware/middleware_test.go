package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ClinicaVital/CV-Portal/internal/middleware"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
)

// mockFetcher implements middleware.SessionFetcher without any database dependency.
type mockFetcher struct {
	session utils.SessionData
	err     error
}

func (m mockFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	return m.session, m.err
}

// callWithCookie wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting one cookie on the request, and returns the recorded response.
func callWithCookie(t *testing.T, mw func(http.Handler) http.Handler, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookieName != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestSessionMiddleware_MissingCookie verifies that a request with no session_id
// cookie receives a 401 response pointing back at the login view.
func TestSessionMiddleware_MissingCookie(t *testing.T) {
	fetcher := mockFetcher{}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/login") {
		t.Errorf("expected redirect hint in body, got: %q", rec.Body.String())
	}
}

// TestSessionMiddleware_FetcherError verifies that a fetcher error (e.g. session not found)
// results in a 401 response.
func TestSessionMiddleware_FetcherError(t *testing.T) {
	fetcher := mockFetcher{
		session: utils.SessionData{},
		err:     errors.New("session not found"),
	}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "nonexistent-session-id")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestSessionMiddleware_ValidSession verifies that a live session passes through
// and that the session data is injected into the context.
func TestSessionMiddleware_ValidSession(t *testing.T) {
	want := utils.SessionData{
		SessionID: "valid-session-id",
		Cedula:    "1102354789",
		Token:     "bearer-token",
		Rol:       "medico",
	}

	fetcher := mockFetcher{session: want}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session not in context", http.StatusInternalServerError)
			return
		}
		if got.Cedula != want.Cedula || got.Token != want.Token {
			http.Error(w, "wrong session in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mw := middleware.SessionMiddleware(fetcher)
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session-id"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

// callWithSession runs a handler chain with the given session already in context,
// the way SessionMiddleware would leave it.
func callWithSession(t *testing.T, mw func(http.Handler) http.Handler, session *utils.SessionData) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if session != nil {
		ctx := utils.WithSession(req.Context(), *session)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestRoleMiddleware_MissingSession verifies that RoleMiddleware returns 401 when
// no session is present in the request context.
func TestRoleMiddleware_MissingSession(t *testing.T) {
	mw := middleware.RoleMiddleware("administrador")

	rec := callWithSession(t, mw, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestRoleMiddleware_WrongRole verifies that a session with a different role
// receives a 403 response.
func TestRoleMiddleware_WrongRole(t *testing.T) {
	mw := middleware.RoleMiddleware("administrador")

	rec := callWithSession(t, mw, &utils.SessionData{Rol: "medico"})

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

// TestRoleMiddleware_CaseInsensitive verifies that role comparison ignores case,
// since the backend returns "Administrador" and "administrador" interchangeably.
func TestRoleMiddleware_CaseInsensitive(t *testing.T) {
	mw := middleware.RoleMiddleware("administrador")

	for _, rol := range []string{"administrador", "Administrador", "ADMINISTRADOR"} {
		rec := callWithSession(t, mw, &utils.SessionData{Rol: rol})
		if rec.Code != http.StatusOK {
			t.Errorf("rol %q: expected 200, got %d", rol, rec.Code)
		}
	}
}

// TestCORSMiddleware_AllowedOrigin verifies that an allow-listed origin is echoed
// back and that a disallowed origin gets no CORS headers.
func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"http://localhost:5173"})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}

// TestCORSMiddleware_Preflight verifies that OPTIONS requests short-circuit with 204.
func TestCORSMiddleware_Preflight(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"http://localhost:5173"})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run on preflight")
	})
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

// TestRateLimitMiddleware verifies that a burst of requests from one IP is
// eventually throttled with 429 while the first request always passes.
func TestRateLimitMiddleware(t *testing.T) {
	mw := middleware.RateLimitMiddleware(1)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	var last int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.7:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("first request: expected 200, got %d", rec.Code)
		}
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("expected burst to end with 429, got %d", last)
	}

	// A different IP has its own limiter and is not affected.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.8:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected fresh IP to pass, got %d", rec.Code)
	}
}
