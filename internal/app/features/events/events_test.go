package events

import (
	"net/http"
	"testing"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	"github.com/pkslestari/portal/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, routes map[string]testutil.APIResponse) *Handler {
	t.Helper()
	testutil.MustBootTemplates(t)

	api := testutil.FakeContentAPI(t, routes)
	logger := zap.NewNop()
	return NewHandler(
		eventstore.New(api, nil, logger),
		errorsfeature.NewErrorLogger(logger),
		errorsfeature.NewHandler(),
		logger,
	)
}

func TestListPartitionsUpcomingAndPast(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/": {Status: 200, Body: `[
			{"id":1,"title":"Future Webinar","date":"2999-01-01","status":"published"},
			{"id":2,"title":"Past Workshop","date":"2020-01-01","status":"published"},
			{"id":3,"title":"Secret Draft","date":"2999-06-01","status":"draft"}
		]`},
	})

	req := testutil.NewRequest(http.MethodGet, "/events")
	rec := testutil.NewRecorder()
	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Future Webinar")
	rec.AssertContains(t, "Past Workshop")
	rec.AssertNotContains(t, "Secret Draft")
}

func TestListShowFilter(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/": {Status: 200, Body: `[
			{"id":1,"title":"Future Webinar","date":"2999-01-01","status":"published"},
			{"id":2,"title":"Past Workshop","date":"2020-01-01","status":"published"}
		]`},
	})

	req := testutil.NewRequest(http.MethodGet, "/events?show=past")
	rec := testutil.NewRecorder()
	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Past Workshop")
	rec.AssertNotContains(t, "Future Webinar")
}

func TestListUndatedEventStaysVisible(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/": {Status: 200, Body: `[
			{"id":1,"title":"Save The Date","status":"published"}
		]`},
	})

	req := testutil.NewRequest(http.MethodGet, "/events")
	rec := testutil.NewRecorder()
	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Save The Date")
}

func TestListEmpty(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/": {Status: 200, Body: `[]`},
	})

	req := testutil.NewRequest(http.MethodGet, "/events")
	rec := testutil.NewRecorder()
	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No events")
}

func TestListBackendUnreachableStillRenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	logger := zap.NewNop()
	h := NewHandler(
		eventstore.New(testutil.UnreachableContentAPI(t), nil, logger),
		errorsfeature.NewErrorLogger(logger),
		errorsfeature.NewHandler(),
		logger,
	)

	req := testutil.NewRequest(http.MethodGet, "/events")
	rec := testutil.NewRecorder()
	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Events are unavailable right now")
}

func TestDetail(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/42": {Status: 200, Body: `{"id":42,"title":"Mill Visit","date":"2999-03-01","location":"Medan","status":"published"}`},
	})

	srv := Routes(h)
	req := testutil.NewRequest(http.MethodGet, "/42")
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Mill Visit")
	rec.AssertContains(t, "Medan")
}

func TestDetailDraftHiddenAsNotFound(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/events/7": {Status: 200, Body: `{"id":7,"title":"Unannounced Launch","status":"draft"}`},
	})

	srv := Routes(h)
	req := testutil.NewRequest(http.MethodGet, "/7")
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertNotContains(t, "Unannounced Launch")
}

func TestDetailMissing(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{})

	srv := Routes(h)
	req := testutil.NewRequest(http.MethodGet, "/999")
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
