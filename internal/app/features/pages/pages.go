// internal/app/features/pages/pages.go
package pages

import (
	"errors"
	"html/template"
	"net/http"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides static page handlers.
type Handler struct {
	pages  *pagestore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(pages *pagestore.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pages:  pages,
		errLog: errLog,
		logger: logger,
	}
}

// PageVM is the view model for page content.
type PageVM struct {
	viewdata.BaseVM
	Slug        string
	Content     template.HTML
	HasContent  bool
	Placeholder string
}

// AboutRouter returns a router for the about page.
func (h *Handler) AboutRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage(models.PageSlugAbout, "About"))
	return r
}

// PKSLestariRouter returns a router for the PKSlestari programme page.
func (h *Handler) PKSLestariRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage(models.PageSlugPKSLestari, "PKSlestari"))
	return r
}

// BlogsRouter returns a router for the blogs page.
func (h *Handler) BlogsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage(models.PageSlugBlogs, "Blogs"))
	return r
}

// showPage returns a handler that displays a CMS fragment by slug.
// Missing or whitespace-only content renders the page chrome with a
// placeholder instead of failing the request.
func (h *Handler) showPage(slug, defaultTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := PageVM{
			BaseVM:      viewdata.New(r),
			Slug:        slug,
			Placeholder: models.DefaultPlaceholder,
		}
		vm.Title = defaultTitle

		page, err := h.pages.GetBySlug(r.Context(), slug)
		switch {
		case err == nil:
			if page.Title != "" {
				vm.Title = page.Title
			}
			if !htmlsanitize.IsContentEmpty(page.Content) {
				vm.Content = htmlsanitize.SanitizeToHTML(page.Content)
				vm.HasContent = true
			}
		case errors.Is(err, contentapi.ErrNotFound):
			h.logger.Debug("page fragment not found", zap.String("slug", slug))
		default:
			h.errLog.LogWithFields(r, "failed to get page", err, zap.String("slug", slug))
		}

		templates.Render(w, r, "pages/show", vm)
	}
}
