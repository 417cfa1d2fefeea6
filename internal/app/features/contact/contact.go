// internal/app/features/contact/contact.go
package contact

import (
	"errors"
	"html/template"
	"net/http"

	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/htmlsanitize"
	"github.com/pkslestari/portal/internal/app/system/inputval"
	"github.com/pkslestari/portal/internal/app/system/mailer"
	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler provides the contact page and form submission.
type Handler struct {
	pages    *pagestore.Store
	mail     mailer.Sender
	inboxTo  string
	siteName string
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new contact Handler. inboxTo is the support inbox
// that receives contact notifications.
func NewHandler(pages *pagestore.Store, mail mailer.Sender, inboxTo string, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pages:    pages,
		mail:     mail,
		inboxTo:  inboxTo,
		siteName: models.DefaultSiteName,
		errLog:   errLog,
		logger:   logger,
	}
}

// FormInput is the visitor-submitted contact form.
type FormInput struct {
	Name    string `validate:"required,max=200" label:"Name"`
	Email   string `validate:"required,email,max=254" label:"Email address"`
	Subject string `validate:"required,max=200" label:"Subject"`
	Message string `validate:"required,max=5000" label:"Message"`
}

// ContactVM is the view model for the contact page.
type ContactVM struct {
	viewdata.BaseVM
	Intro       template.HTML
	Form        FormInput
	Error       string
	Sent        bool
	ReferenceID string
}

// Routes returns a chi.Router with contact routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Show)
	r.Post("/", h.Submit)
	return r
}

// Show renders the contact page with the CMS intro fragment above the form.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	vm := h.baseVM(r)
	templates.Render(w, r, "contact/index", vm)
}

// Submit validates the form and mails the message to the support inbox.
// Each accepted message gets a reference id the visitor can quote in
// follow-ups.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "contact form parse failed", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := FormInput{
		Name:    normalize.QueryParam(r.FormValue("name")),
		Email:   normalize.Email(r.FormValue("email")),
		Subject: normalize.QueryParam(r.FormValue("subject")),
		Message: r.FormValue("message"),
	}

	vm := h.baseVM(r)
	vm.Form = input

	if result := inputval.Validate(input); result.HasErrors() {
		vm.Error = result.First()
		templates.Render(w, r, "contact/index", vm)
		return
	}

	referenceID := uuid.NewString()
	textBody, htmlBody := mailer.ContactMessageEmail(mailer.ContactMessageData{
		SiteName:    h.siteName,
		ReferenceID: referenceID,
		Name:        input.Name,
		Email:       input.Email,
		Subject:     input.Subject,
		Message:     input.Message,
	})

	err := h.mail.Send(mailer.Email{
		To:       h.inboxTo,
		Subject:  "[Contact] " + input.Subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
	if err != nil {
		h.errLog.LogWithFields(r, "contact message delivery failed", err,
			zap.String("reference_id", referenceID))
		vm.Error = "Your message could not be sent right now. Please try again later."
		templates.Render(w, r, "contact/index", vm)
		return
	}

	h.logger.Info("contact message sent",
		zap.String("reference_id", referenceID))

	vm.Form = FormInput{}
	vm.Sent = true
	vm.ReferenceID = referenceID
	templates.Render(w, r, "contact/index", vm)
}

// baseVM builds the shared view model, including the optional CMS intro
// fragment shown above the form.
func (h *Handler) baseVM(r *http.Request) ContactVM {
	vm := ContactVM{BaseVM: viewdata.New(r)}
	vm.Title = "Contact"

	page, err := h.pages.GetBySlug(r.Context(), models.PageSlugContact)
	switch {
	case err == nil:
		if !htmlsanitize.IsContentEmpty(page.Content) {
			vm.Intro = htmlsanitize.SanitizeToHTML(page.Content)
		}
	case errors.Is(err, contentapi.ErrNotFound):
		// No intro fragment configured; the form stands alone.
	default:
		h.logger.Warn("failed to load contact intro fragment", zap.Error(err))
	}

	return vm
}
