// internal/app/features/home/home.go
package home

import (
	"html/template"
	"net/http"
	"time"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUpcomingEvents is how many upcoming events the landing strip shows.
const maxUpcomingEvents = 3

// Handler provides landing page handlers.
type Handler struct {
	pages  *pagestore.Store
	events *eventstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(pages *pagestore.Store, events *eventstore.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pages:  pages,
		events: events,
		errLog: errLog,
		logger: logger,
	}
}

// EventVM is a single event card on the landing strip.
type EventVM struct {
	ID       string
	Title    string
	Date     string
	Location string
}

// HomeVM is the view model for the landing page.
type HomeVM struct {
	viewdata.BaseVM
	LandingTitle   string
	Content        template.HTML
	HasContent     bool
	UpcomingEvents []EventVM
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the landing page. The page degrades rather than fails:
// a missing or empty landing fragment falls back to defaults, and an
// unreachable event list just hides the strip.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := HomeVM{
		BaseVM:       viewdata.New(r),
		LandingTitle: models.DefaultLandingTitle,
	}
	vm.Title = "Home"

	page, err := h.pages.GetBySlug(r.Context(), models.PageSlugLanding)
	if err != nil {
		h.logger.Warn("failed to load landing page fragment", zap.Error(err))
	} else {
		if page.Title != "" {
			vm.LandingTitle = page.Title
		}
		if !htmlsanitize.IsContentEmpty(page.Content) {
			vm.Content = htmlsanitize.SanitizeToHTML(page.Content)
			vm.HasContent = true
		}
	}

	vm.UpcomingEvents = h.upcomingEvents(r)

	templates.Render(w, r, "home/index", vm)
}

// upcomingEvents returns up to maxUpcomingEvents published upcoming events
// for the landing strip. Errors are logged and render as an empty strip.
func (h *Handler) upcomingEvents(r *http.Request) []EventVM {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load events for landing strip", err)
		return nil
	}

	now := time.Now()
	var out []EventVM
	for _, ev := range events {
		if !ev.IsPublished() || !ev.IsUpcoming(now) {
			continue
		}
		out = append(out, EventVM{
			ID:       ev.ID.String(),
			Title:    ev.Title,
			Date:     ev.Date,
			Location: ev.Location,
		})
		if len(out) == maxUpcomingEvents {
			break
		}
	}
	return out
}
