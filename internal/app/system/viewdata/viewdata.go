package viewdata

import (
	"context"
	"html/template"
	"net/http"

	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/timeouts"
	"github.com/pkslestari/portal/internal/app/system/viewer"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site chrome
	SiteName   string
	FooterHTML template.HTML

	// Viewer context (from viewer middleware)
	IsLoggedIn bool
	UserID     string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// globalPages is set by Init and used to load the footer fragment.
var globalPages *pagestore.Store

// Init sets the page store used to load shared site chrome.
// Call this once at startup from bootstrap.
func Init(pages *pagestore.Store) {
	globalPages = pages
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vc := viewer.Current(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		FooterHTML:  htmlsanitize.SanitizeToHTML(models.DefaultFooterHTML),
		IsLoggedIn:  vc.IsLoggedIn,
		UserID:      vc.UserID,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if globalPages != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		if page, err := globalPages.GetBySlug(ctx, models.PageSlugFooter); err == nil {
			if !htmlsanitize.IsContentEmpty(page.Content) {
				vm.FooterHTML = htmlsanitize.SanitizeToHTML(page.Content)
			}
		}
	}

	return vm
}

// New creates a BaseVM without a page title; handlers that compute the
// title later can set it on the embedded struct.
func New(r *http.Request) BaseVM {
	return NewBaseVM(r, "", "/")
}
