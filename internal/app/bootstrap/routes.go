// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	contactfeature "github.com/pkslestari/portal/internal/app/features/contact"
	errorsfeature "github.com/pkslestari/portal/internal/app/features/errors"
	eventsfeature "github.com/pkslestari/portal/internal/app/features/events"
	healthfeature "github.com/pkslestari/portal/internal/app/features/health"
	homefeature "github.com/pkslestari/portal/internal/app/features/home"
	materialsfeature "github.com/pkslestari/portal/internal/app/features/materials"
	materialsapifeature "github.com/pkslestari/portal/internal/app/features/materialsapi"
	pagesfeature "github.com/pkslestari/portal/internal/app/features/pages"
	appresources "github.com/pkslestari/portal/internal/app/resources"
	assessmentstore "github.com/pkslestari/portal/internal/app/store/assessment"
	cataloguestore "github.com/pkslestari/portal/internal/app/store/catalogue"
	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/apicors"
	"github.com/pkslestari/portal/internal/app/system/viewdata"
	"github.com/pkslestari/portal/internal/app/system/viewer"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, and Startup
// hooks have completed. It:
//  1. Wires the viewer session layer (reading the platform session cookie)
//  2. Boots the template engine with all registered sets
//  3. Builds stores on top of the content API client and cache
//  4. Mounts feature routers and the JSON API
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Viewer session layer: reads the cookie the platform auth service
	// writes and resolves assessment completion per request.
	sessionMgr, err := viewer.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	sessionMgr.SetCompletionResolver(assessmentstore.New(deps.Content, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Stores over the content API.
	pages := pagestore.New(deps.Content, deps.Cache, logger)
	events := eventstore.New(deps.Content, deps.Cache, logger)
	catalogue := cataloguestore.New(deps.Content, logger)

	// viewdata loads the shared footer fragment through the page store.
	viewdata.Init(pages)

	errLog := errorsfeature.NewErrorLogger(logger)
	errPages := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// ── Global middleware ────────────────────────────────────────────────

	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Viewer middleware: every request gets a ViewerContext, anonymous
	// when no valid session cookie is present.
	r.Use(sessionMgr.LoadViewer)

	// CSRF protection with a path-based exemption for the read-only JSON
	// API. Cookie name is "lestari_csrf" to avoid collisions with other
	// Lestari services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("lestari_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			errPages.Forbidden(w, req)
		})),
	}
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			// The JSON API is read-only and cookie-free; CSRF does not apply.
			if strings.HasPrefix(req.URL.Path, "/api/") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ── Routes ───────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.Content, deps.Cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// JSON API with permissive (or origin-restricted) CORS.
	apiHandler := materialsapifeature.NewHandler(catalogue, errLog, logger)
	r.Group(func(r chi.Router) {
		if appCfg.APIAllowedOrigins != "" {
			origins := strings.Split(appCfg.APIAllowedOrigins, ",")
			for i := range origins {
				origins[i] = strings.TrimSpace(origins[i])
			}
			r.Use(apicors.MiddlewareWithOrigins(origins...))
		} else {
			r.Use(apicors.Middleware())
		}
		r.Mount("/api", materialsapifeature.Routes(apiHandler))
	})

	// Static assets with pre-compressed file support (gzip/brotli):
	// /static/* serves files from disk, /assets/* serves embedded assets.
	r.Handle("/static/*", fileserver.Handler("/static", "static"))
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Landing page.
	homeHandler := homefeature.NewHandler(pages, events, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// CMS-backed static pages.
	pagesHandler := pagesfeature.NewHandler(pages, errLog, logger)
	r.Mount("/about", pagesHandler.AboutRouter())
	r.Mount("/pkslestari", pagesHandler.PKSLestariRouter())
	r.Mount("/blogs", pagesHandler.BlogsRouter())

	// Events listing and preview.
	eventsHandler := eventsfeature.NewHandler(events, errLog, errPages, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Learning materials catalogue.
	materialsHandler := materialsfeature.NewHandler(catalogue, errLog, logger)
	r.Mount("/materials", materialsfeature.Routes(materialsHandler))

	// Contact page and form.
	contactHandler := contactfeature.NewHandler(pages, deps.Mailer, appCfg.ContactInbox, errLog, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// Branded error pages.
	r.NotFound(errPages.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r, nil
}
