// internal/app/features/materialsapi/materialsapi.go
package materialsapi

import (
	stderrors "errors"
	"net/http"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	cataloguestore "github.com/pkslestari/portal/internal/app/store/catalogue"
	"github.com/pkslestari/portal/internal/app/system/catalogue"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/jsonutil"
	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/app/system/viewer"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the catalogue as JSON for script consumers (the
// assessment platform's SPA embeds the materials list this way).
type Handler struct {
	store  *cataloguestore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new materials API Handler.
func NewHandler(store *cataloguestore.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		errLog: errLog,
		logger: logger,
	}
}

// MaterialJSON is one material in the API response.
type MaterialJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ResourceURL string `json:"resource_url"`
	Download    bool   `json:"download"`
}

// SectionJSON is one catalogue section in the API response.
type SectionJSON struct {
	Label     string         `json:"label"`
	Materials []MaterialJSON `json:"materials"`
}

// CatalogueJSON is the API response envelope.
type CatalogueJSON struct {
	Sections []SectionJSON `json:"sections"`
	Category string        `json:"category,omitempty"`
}

// Routes returns a chi.Router with the materials API mounted. Unknown API
// paths answer in JSON, not with the HTML 404 page.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/materials", h.List)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		jsonutil.NotFound(w, "unknown endpoint")
	})
	return r
}

// List returns the catalogue visible to the current viewer, optionally
// filtered by ?category=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vc := viewer.Current(r)
	requested := normalize.QueryParam(r.URL.Query().Get("category"))

	sections, mats, err := h.store.Fetch(r.Context(), vc)
	if err != nil {
		h.errLog.Log(r, "materials api: catalogue fetch failed", err)
		if stderrors.Is(err, contentapi.ErrUnavailable) {
			jsonutil.ServiceUnavailable(w, "content service unavailable")
			return
		}
		jsonutil.InternalError(w, "failed to load catalogue")
		return
	}

	cat := catalogue.Reconcile(sections, mats, catalogue.Options{Category: requested}).FilterVisible(vc)

	resp := CatalogueJSON{
		Category: requested,
		Sections: []SectionJSON{},
	}
	for _, s := range cat.Sections {
		sec := SectionJSON{
			Label:     s.GroupLabel(),
			Materials: []MaterialJSON{},
		}
		for _, m := range cat.MaterialsFor(s) {
			sec.Materials = append(sec.Materials, toJSON(m))
		}
		resp.Sections = append(resp.Sections, sec)
	}

	jsonutil.OK(w, resp)
}

func toJSON(m models.Material) MaterialJSON {
	return MaterialJSON{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: htmlsanitize.ExtractText(m.Description),
		Type:        m.Type,
		ImageURL:    m.ImageURL,
		ResourceURL: m.ResourceURL(),
		Download:    m.HasDownload(),
	}
}
