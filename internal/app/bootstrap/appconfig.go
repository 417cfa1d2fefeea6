// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging, CORS, and request limits. AppConfig is where
// everything specific to the portal lives.
type AppConfig struct {
	// Content API (the Lestari platform backend serving pages, events,
	// sections, and materials)
	ContentAPIURL     string        // Base URL, e.g. https://api.pkslestari.org
	ContentAPITimeout time.Duration // Per-request timeout for upstream calls

	// Redis cache in front of the content API.
	// Leave CacheURL empty to run without a cache.
	CacheURL string // e.g. redis://localhost:6379/0

	// Platform session cookie. Key, name, and domain must match what the
	// Lestari auth service writes so the portal can read the viewer's
	// identity and access token.
	SessionKey    string        // Secret key for verifying session cookies
	SessionName   string        // Cookie name (default: lestari-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// JSON API CORS restriction. Comma-separated origins; empty allows
	// any origin (the API is public and read-only).
	APIAllowedOrigins string

	// Email/SMTP configuration for contact form notifications
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@pkslestari.org)
	MailFromName string // From display name

	// ContactInbox is the support address that receives contact messages.
	ContactInbox string

	// Background cache warming (events list, static pages)
	CacheWarmEnabled bool
}
