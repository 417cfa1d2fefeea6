package materials

import (
	"net/http"
	"strings"
	"testing"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	cataloguestore "github.com/pkslestari/portal/internal/app/store/catalogue"
	"github.com/pkslestari/portal/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, routes map[string]testutil.APIResponse) *Handler {
	t.Helper()
	testutil.MustBootTemplates(t)

	api := testutil.FakeContentAPI(t, routes)
	logger := zap.NewNop()
	return NewHandler(
		cataloguestore.New(api, logger),
		errorsfeature.NewErrorLogger(logger),
		logger,
	)
}

func catalogueRoutes() map[string]testutil.APIResponse {
	return map[string]testutil.APIResponse{
		"/learning-materials-sections/public": {Status: 200, Body: `[
			{"id":1,"category":"Certification","title":"Certification","order":2,"status":"published"},
			{"id":2,"category":"Basics","title":"Basics","order":1,"status":"published"},
			{"id":3,"category":"Internal","title":"Internal","order":3,"status":"draft"}
		]`},
		"/learning-materials/public/list": {Status: 200, Body: `[
			{"id":"m1","title":"Mill Intro","category":"Basics","isMaterialPublic":true},
			{"id":"m2","title":"RSPO Guide","category":"Certification","isMaterialPublic":true},
			{"id":"m3","title":"Member Deep Dive","category":"Basics","isMaterialPublic":false}
		]`},
	}
}

func TestIndexAnonymous(t *testing.T) {
	h := newTestHandler(t, catalogueRoutes())

	req := testutil.NewViewerRequest(http.MethodGet, "/materials", testutil.AnonymousViewer())
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Mill Intro")
	rec.AssertContains(t, "RSPO Guide")
	// Non-public material hidden from anonymous viewers.
	rec.AssertNotContains(t, "Member Deep Dive")
	// Draft section never renders.
	rec.AssertNotContains(t, "Internal")
}

func TestIndexSectionOrder(t *testing.T) {
	h := newTestHandler(t, catalogueRoutes())

	req := testutil.NewRequest(http.MethodGet, "/materials")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	body := rec.Body.String()
	basics := strings.Index(body, "Basics")
	cert := strings.Index(body, "Certification")
	if basics == -1 || cert == -1 {
		t.Fatal("expected both section headings")
	}
	if basics > cert {
		t.Errorf("Basics (order 1) should render before Certification (order 2)")
	}
}

func TestIndexLoggedInMember(t *testing.T) {
	routes := map[string]testutil.APIResponse{
		"/learning-materials-sections/user/list": {Status: 200, Body: `[
			{"id":2,"category":"Basics","title":"Basics","order":1,"status":"published"}
		]`},
		"/learning-materials/user/list": {Status: 200, Body: `[
			{"id":"m1","title":"Mill Intro","category":"Basics","isMaterialPublic":true},
			{"id":"m3","title":"Member Deep Dive","category":"Basics","isMaterialPublic":false}
		]`},
	}
	h := newTestHandler(t, routes)

	req := testutil.NewViewerRequest(http.MethodGet, "/materials", testutil.MemberViewer())
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Member Deep Dive")
}

func TestIndexAssessmentGatedMaterial(t *testing.T) {
	routes := map[string]testutil.APIResponse{
		"/learning-materials-sections/user/list": {Status: 200, Body: `[
			{"id":2,"category":"Basics","title":"Basics","order":1,"status":"published"}
		]`},
		"/learning-materials/user/list": {Status: 200, Body: `[
			{"id":"m1","title":"Mill Intro","category":"Basics","isMaterialPublic":true},
			{"id":"m4","title":"Graduate Toolkit","category":"Basics","isMaterialPublic":false,"requiresAssessmentCompletion":true}
		]`},
	}

	t.Run("before completing an assessment", func(t *testing.T) {
		h := newTestHandler(t, routes)
		req := testutil.NewViewerRequest(http.MethodGet, "/materials", testutil.NewMemberViewer())
		rec := testutil.NewRecorder()
		h.Index(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "Mill Intro")
		rec.AssertNotContains(t, "Graduate Toolkit")
	})

	t.Run("after completing an assessment", func(t *testing.T) {
		h := newTestHandler(t, routes)
		req := testutil.NewViewerRequest(http.MethodGet, "/materials", testutil.MemberViewer())
		rec := testutil.NewRecorder()
		h.Index(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "Graduate Toolkit")
	})
}

func TestIndexCategoryFilter(t *testing.T) {
	h := newTestHandler(t, catalogueRoutes())

	req := testutil.NewRequest(http.MethodGet, "/materials?category=basics")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Mill Intro")
	rec.AssertNotContains(t, "RSPO Guide")
}

func TestIndexCategoryFilterNoMatch(t *testing.T) {
	h := newTestHandler(t, catalogueRoutes())

	// Substring of a real category must not match.
	req := testutil.NewRequest(http.MethodGet, "/materials?category=bas")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No materials found")
}

func TestIndexPartialFetchFailureStillRenders(t *testing.T) {
	// Sections endpoint answers, materials endpoint is down: the page must
	// render the placeholder, not an error page.
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/learning-materials-sections/public": {Status: 200, Body: `[
			{"id":1,"category":"Basics","title":"Basics","order":1,"status":"published"}
		]`},
		"/learning-materials/public/list": {Status: 500, Body: `{}`},
	})

	req := testutil.NewRequest(http.MethodGet, "/materials")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No materials found")
}

func TestIndexBackendUnreachableStillRenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	logger := zap.NewNop()
	h := NewHandler(
		cataloguestore.New(testutil.UnreachableContentAPI(t), logger),
		errorsfeature.NewErrorLogger(logger),
		logger,
	)

	req := testutil.NewRequest(http.MethodGet, "/materials")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No materials found")
}

func TestIndexEmptyCatalogue(t *testing.T) {
	h := newTestHandler(t, map[string]testutil.APIResponse{
		"/learning-materials-sections/public": {Status: 200, Body: `[]`},
		"/learning-materials/public/list":     {Status: 200, Body: `[]`},
	})

	req := testutil.NewRequest(http.MethodGet, "/materials")
	rec := testutil.NewRecorder()
	h.Index(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No materials found")
}
