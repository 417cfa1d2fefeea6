// internal/app/features/events/events.go
package events

import (
	stderrors "errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides event listing and preview handlers.
type Handler struct {
	events   *eventstore.Store
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new events Handler.
func NewHandler(events *eventstore.Store, errLog *errorsfeature.ErrorLogger, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		events:   events,
		errLog:   errLog,
		errPages: errPages,
		logger:   logger,
	}
}

// EventVM is a single event for display.
type EventVM struct {
	ID          string
	Title       string
	Description template.HTML
	Date        string
	Location    string
	ExternalURL string
	Image       string
}

// ListVM is the view model for the event listing page.
type ListVM struct {
	viewdata.BaseVM
	Upcoming    []EventVM
	Past        []EventVM
	HasAny      bool
	Show        string
	Unavailable bool
}

// DetailVM is the view model for an event preview page.
type DetailVM struct {
	viewdata.BaseVM
	Event    EventVM
	Upcoming bool
}

// Routes returns a chi.Router with event routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Detail)
	return r
}

// List renders published events, partitioned into upcoming and past.
// ?show=upcoming or ?show=past narrows the page to one partition.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vm := ListVM{
		BaseVM: viewdata.New(r),
		Show:   normalize.QueryParam(r.URL.Query().Get("show")),
	}
	vm.Title = "Events"

	// A failed fetch degrades to an empty listing with an unavailable
	// notice rather than an error page.
	all, err := h.events.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load events", err)
		vm.Unavailable = true
	}

	now := time.Now()
	for _, ev := range all {
		if !ev.IsPublished() {
			continue
		}
		card := toVM(ev)
		if ev.IsUpcoming(now) {
			vm.Upcoming = append(vm.Upcoming, card)
		} else {
			vm.Past = append(vm.Past, card)
		}
	}
	switch strings.ToLower(vm.Show) {
	case "upcoming":
		vm.Past = nil
	case "past":
		vm.Upcoming = nil
	default:
		vm.Show = ""
	}
	vm.HasAny = len(vm.Upcoming)+len(vm.Past) > 0

	templates.Render(w, r, "events/list", vm)
}

// Detail renders a single event preview. Draft events 404 like missing
// ones so unpublished content never leaks through a guessed id.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ev, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, contentapi.ErrNotFound) {
			h.errPages.NotFound(w, r)
			return
		}
		h.errLog.LogWithFields(r, "failed to load event", err, zap.String("id", id))
		if stderrors.Is(err, contentapi.ErrUnavailable) {
			h.errPages.Unavailable(w, r)
			return
		}
		h.errPages.InternalError(w, r)
		return
	}

	if !ev.IsPublished() {
		h.errPages.NotFound(w, r)
		return
	}

	vm := DetailVM{
		BaseVM:   viewdata.New(r),
		Event:    toVM(ev),
		Upcoming: ev.IsUpcoming(time.Now()),
	}
	vm.Title = ev.Title
	vm.BackURL = "/events"

	templates.Render(w, r, "events/detail", vm)
}

func toVM(ev models.Event) EventVM {
	return EventVM{
		ID:          ev.ID.String(),
		Title:       ev.Title,
		Description: htmlsanitize.PrepareForDisplay(ev.Description),
		Date:        ev.Date,
		Location:    ev.Location,
		ExternalURL: ev.ExternalURL,
		Image:       ev.Image,
	}
}
