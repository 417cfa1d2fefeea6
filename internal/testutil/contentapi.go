package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"go.uber.org/zap"
)

// APIResponse is one canned response served by the fake content API.
type APIResponse struct {
	Status int
	Body   string // JSON
}

// FakeContentAPI starts an httptest server that answers each path with its
// canned response (unknown paths get 404) and returns a content API client
// pointed at it. The server is shut down via t.Cleanup.
//
// Usage:
//
//	api := testutil.FakeContentAPI(t, map[string]testutil.APIResponse{
//	    "/events/": {Status: 200, Body: `[{"id":1,"title":"Launch"}]`},
//	})
func FakeContentAPI(t testing.TB, routes map[string]APIResponse) *contentapi.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if resp.Status != 0 {
			w.WriteHeader(resp.Status)
		}
		w.Write([]byte(resp.Body))
	}))
	t.Cleanup(srv.Close)

	return contentapi.New(srv.URL, 2*time.Second, zap.NewNop())
}

// UnreachableContentAPI returns a client pointed at a port nothing listens
// on, for exercising ErrUnavailable paths.
func UnreachableContentAPI(t testing.TB) *contentapi.Client {
	t.Helper()
	return contentapi.New("http://127.0.0.1:1", 500*time.Millisecond, zap.NewNop())
}
