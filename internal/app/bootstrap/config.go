// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/pkslestari/portal/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "LESTARI"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: content_api_url, session_name, etc.
//   - Environment variables: LESTARI_CONTENT_API_URL, LESTARI_SESSION_NAME, etc.
//   - Command-line flags: --content_api_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "content_api_url", Default: "http://localhost:8000", Desc: "Base URL of the Lestari content API"},
	{Name: "content_api_timeout", Default: "10s", Desc: "Per-request timeout for content API calls"},

	{Name: "cache_url", Default: "", Desc: "Redis URL for the content cache (empty disables caching)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session verification key shared with the Lestari auth service (must be strong in production)"},
	{Name: "session_name", Default: "lestari-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	{Name: "api_allowed_origins", Default: "", Desc: "Comma-separated origins for the JSON API (empty allows any)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@pkslestari.org", Desc: "From email address"},
	{Name: "mail_from_name", Default: "PKS Lestari", Desc: "From display name"},

	{Name: "contact_inbox", Default: "info@pkslestari.org", Desc: "Inbox that receives contact form messages"},

	{Name: "cache_warm_enabled", Default: true, Desc: "Run background jobs that keep the content cache warm"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, LESTARI_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		ContentAPIURL:     appValues.String("content_api_url"),
		ContentAPITimeout: appValues.Duration("content_api_timeout", 10*time.Second),

		CacheURL: appValues.String("cache_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		APIAllowedOrigins: appValues.String("api_allowed_origins"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		ContactInbox: appValues.String("contact_inbox"),

		CacheWarmEnabled: appValues.Bool("cache_warm_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !inputval.IsValidHTTPURL(appCfg.ContentAPIURL) {
		logger.Error("invalid content API URL", zap.String("url", appCfg.ContentAPIURL))
		return fmt.Errorf("invalid content API URL: %q", appCfg.ContentAPIURL)
	}

	if appCfg.ContactInbox != "" && !inputval.IsValidEmail(appCfg.ContactInbox) {
		return fmt.Errorf("invalid contact inbox address: %q", appCfg.ContactInbox)
	}

	return nil
}
