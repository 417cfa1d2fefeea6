package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/pkslestari/portal/internal/app/system/viewer"
	"github.com/pkslestari/portal/internal/domain/models"
)

// AnonymousViewer returns the viewer context for a visitor with no session.
func AnonymousViewer() models.ViewerContext {
	return models.Anonymous()
}

// MemberViewer returns a logged-in viewer who has completed an assessment.
func MemberViewer() models.ViewerContext {
	return models.ViewerContext{
		UserID:                 "user-1",
		AccessToken:            "tok-1",
		IsLoggedIn:             true,
		HasCompletedAssessment: true,
	}
}

// NewMemberViewer returns a logged-in viewer who has NOT completed an
// assessment yet.
func NewMemberViewer() models.ViewerContext {
	return models.ViewerContext{
		UserID:      "user-2",
		AccessToken: "tok-2",
		IsLoggedIn:  true,
	}
}

// WithViewer adds a viewer context to the request, bypassing the session
// middleware.
func WithViewer(r *http.Request, vc models.ViewerContext) *http.Request {
	return viewer.WithTestViewer(r, vc)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewViewerRequest creates an HTTP request with a viewer in context.
func NewViewerRequest(method, target string, vc models.ViewerContext) *http.Request {
	return WithViewer(httptest.NewRequest(method, target, nil), vc)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// AssertNotContains checks that the response body does not contain the string.
func (r *ResponseRecorder) AssertNotContains(t interface{ Errorf(string, ...any) }, unexpected string) {
	body := r.Body.String()
	if strings.Contains(body, unexpected) {
		t.Errorf("response body should not contain %q", unexpected)
	}
}
