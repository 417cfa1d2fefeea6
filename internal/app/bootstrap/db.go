// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/pkslestari/portal/internal/app/system/cache"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/mailer"
	"github.com/pkslestari/portal/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB connects to the portal's backends.
//
// WAFFLE calls this after configuration is loaded but before Startup. The
// portal has no database of its own; it builds:
//   - the content API client (the platform backend serving all content)
//   - the optional Redis cache in front of it
//   - the SMTP mailer for contact notifications
//
// A down Redis does not abort startup: the portal degrades to fetching
// everything from the content API directly. A down content API also does
// not abort startup (pages render placeholders and health reports
// degraded), because the portal must be able to boot before the backend
// during deploys.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	apiTimeout := appCfg.ContentAPITimeout
	if apiTimeout <= 0 {
		apiTimeout = timeouts.Medium()
	}
	content := contentapi.New(appCfg.ContentAPIURL, apiTimeout, logger)
	logger.Info("content API client ready",
		zap.String("base_url", appCfg.ContentAPIURL),
		zap.Duration("timeout", apiTimeout),
	)

	if err := content.Ping(ctx); err != nil {
		logger.Warn("content API not reachable at startup; continuing degraded", zap.Error(err))
	}

	var c *cache.Cache
	if appCfg.CacheURL != "" {
		var err error
		c, err = cache.New(ctx, appCfg.CacheURL)
		if err != nil {
			logger.Warn("redis cache unavailable; continuing without cache", zap.Error(err))
			c = nil
		} else {
			logger.Info("connected to redis cache")
		}
	} else {
		logger.Info("cache disabled (no cache_url configured)")
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	logger.Info("initialized email mailer",
		zap.String("host", appCfg.MailSMTPHost),
		zap.Int("port", appCfg.MailSMTPPort),
	)

	return DBDeps{
		Content: content,
		Cache:   c,
		Mailer:  mail,
	}, nil
}
