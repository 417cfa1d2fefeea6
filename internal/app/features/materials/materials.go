// internal/app/features/materials/materials.go
package materials

import (
	"html/template"
	"net/http"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	cataloguestore "github.com/pkslestari/portal/internal/app/store/catalogue"
	"github.com/pkslestari/portal/internal/app/system/catalogue"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/app/system/viewer"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the learning materials catalogue page.
type Handler struct {
	store  *cataloguestore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new materials Handler.
func NewHandler(store *cataloguestore.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		errLog: errLog,
		logger: logger,
	}
}

// MaterialVM is a single material card.
type MaterialVM struct {
	ID          string
	Title       string
	Description template.HTML
	Type        string
	ImageURL    string
	ResourceURL string
	Download    bool
}

// SectionVM is a catalogue section with its materials.
type SectionVM struct {
	Label     string
	Materials []MaterialVM
}

// CatalogueVM is the view model for the materials page.
type CatalogueVM struct {
	viewdata.BaseVM
	Sections   []SectionVM
	Categories []string
	Category   string
	IsEmpty    bool
}

// Routes returns a chi.Router with materials routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the catalogue: published sections in display order, each
// with the materials the current viewer is allowed to see, optionally
// filtered to one category via ?category=.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vc := viewer.Current(r)
	requested := normalize.QueryParam(r.URL.Query().Get("category"))

	// A failed fetch still yields whatever the surviving endpoint returned;
	// the page renders that half, or the empty-catalogue placeholder.
	sections, mats, err := h.store.Fetch(r.Context(), vc)
	if err != nil {
		h.errLog.Log(r, "failed to load catalogue", err)
	}

	full := catalogue.Reconcile(sections, mats, catalogue.Options{}).FilterVisible(vc)
	cat := full
	if requested != "" {
		cat = catalogue.Reconcile(sections, mats, catalogue.Options{Category: requested}).FilterVisible(vc)
	}

	vm := CatalogueVM{
		BaseVM:   viewdata.New(r),
		Category: requested,
		IsEmpty:  cat.IsEmpty(),
	}
	vm.Title = "Learning Materials"

	// The category dropdown always lists every section the viewer could
	// pick, even while a filter is active.
	for _, s := range full.Sections {
		vm.Categories = append(vm.Categories, s.GroupLabel())
	}

	for _, s := range cat.Sections {
		sec := SectionVM{Label: s.GroupLabel()}
		for _, m := range cat.MaterialsFor(s) {
			sec.Materials = append(sec.Materials, toVM(m))
		}
		vm.Sections = append(vm.Sections, sec)
	}

	templates.Render(w, r, "materials/index", vm)
}

func toVM(m models.Material) MaterialVM {
	return MaterialVM{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: htmlsanitize.PrepareForDisplay(m.Description),
		Type:        m.Type,
		ImageURL:    m.ImageURL,
		ResourceURL: m.ResourceURL(),
		Download:    m.HasDownload(),
	}
}
