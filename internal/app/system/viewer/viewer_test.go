package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkslestari/portal/internal/domain/models"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "lestari-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestNewSessionManagerRejectsWeakKeyInproduction(t *testing.T) {
	_, err := NewSessionManager("dev-only-key", "s", "", time.Hour, true, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for weak key with secure=true")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestNewSessionManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestLoadViewerWithoutSessionIsAnonymous(t *testing.T) {
	sm := newTestManager(t)

	var got models.ViewerContext
	h := sm.LoadViewer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Current(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/materials", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got.IsLoggedIn {
		t.Error("viewer without session should be anonymous")
	}
	if got.HasCompletedAssessment {
		t.Error("anonymous viewer must not have completed assessment")
	}
}

type stubResolver struct {
	result bool
	userID string
	token  string
	called bool
	calls  int
}

func (s *stubResolver) HasCompletedAssessment(_ context.Context, userID, token string) bool {
	s.called = true
	s.calls++
	s.userID = userID
	s.token = token
	return s.result
}

func TestLoadViewerRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	resolver := &stubResolver{result: true}
	sm.SetCompletionResolver(resolver)

	// Establish a session and capture the cookie.
	rec := httptest.NewRecorder()
	setup := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Establish(rec, setup, "user-42", "tok-abc"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Establish wrote no cookie")
	}

	var got models.ViewerContext
	h := sm.LoadViewer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Current(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/materials", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !got.IsLoggedIn {
		t.Fatal("viewer with session should be logged in")
	}
	if got.UserID != "user-42" {
		t.Errorf("UserID = %q, want user-42", got.UserID)
	}
	if got.AccessToken != "tok-abc" {
		t.Errorf("AccessToken = %q, want tok-abc", got.AccessToken)
	}
	if !got.HasCompletedAssessment {
		t.Error("resolver returned true but flag not set")
	}
	if resolver.userID != "user-42" || resolver.token != "tok-abc" {
		t.Errorf("resolver called with (%q, %q)", resolver.userID, resolver.token)
	}
}

func TestLoadViewerReusesResolvedCompletion(t *testing.T) {
	sm := newTestManager(t)
	resolver := &stubResolver{result: true}
	sm.SetCompletionResolver(resolver)

	rec := httptest.NewRecorder()
	setup := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Establish(rec, setup, "user-42", "tok-abc"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	cookies := rec.Result().Cookies()

	var got models.ViewerContext
	h := sm.LoadViewer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Current(r)
	}))

	// Two requests in the same session: asset and page loads must not fan
	// out into one upstream lookup each.
	for _, path := range []string{"/materials", "/assets/css/site.css"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			r.AddCookie(c)
		}
		h.ServeHTTP(httptest.NewRecorder(), r)
	}

	if resolver.calls != 1 {
		t.Errorf("resolver called %d times, want 1", resolver.calls)
	}
	if !got.HasCompletedAssessment {
		t.Error("cached completion flag lost on second request")
	}
}

func TestLoadViewerWithoutResolverFailsClosed(t *testing.T) {
	sm := newTestManager(t)

	rec := httptest.NewRecorder()
	setup := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Establish(rec, setup, "user-42", "tok-abc"); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	var got models.ViewerContext
	h := sm.LoadViewer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Current(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/materials", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !got.IsLoggedIn {
		t.Fatal("viewer with session should be logged in")
	}
	if got.HasCompletedAssessment {
		t.Error("without a resolver the completion flag must stay false")
	}
}

func TestLoadViewerPartialSessionIsAnonymous(t *testing.T) {
	sm := newTestManager(t)
	resolver := &stubResolver{result: true}
	sm.SetCompletionResolver(resolver)

	// user id present but no access token
	rec := httptest.NewRecorder()
	setup := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Establish(rec, setup, "user-42", ""); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	var got models.ViewerContext
	h := sm.LoadViewer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Current(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/materials", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got.IsLoggedIn {
		t.Error("session missing access token must not count as logged in")
	}
	if resolver.called {
		t.Error("resolver must not be called for anonymous viewers")
	}
}

func TestWithTestViewer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	vc := models.ViewerContext{UserID: "u1", IsLoggedIn: true, HasCompletedAssessment: true}
	got := Current(WithTestViewer(r, vc))
	if got != vc {
		t.Errorf("Current = %+v, want %+v", got, vc)
	}
}

func TestCurrentDefaultsToAnonymous(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if Current(r).IsLoggedIn {
		t.Error("request without viewer should be anonymous")
	}
}
