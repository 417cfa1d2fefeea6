// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/pkslestari/portal/internal/app/resources"
	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after backends are connected, but before the HTTP
// handler is built and requests are served.
//
// It registers the shared template set and starts the background task
// runner that keeps the content cache warm. Cache warming is skipped when
// no cache is configured or when cache_warm_enabled is false.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.CacheWarmEnabled && deps.Cache != nil {
		startTaskRunner(appCfg, deps, logger)
	} else {
		logger.Info("cache warming disabled")
	}

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	events := eventstore.New(deps.Content, deps.Cache, logger)
	pages := pagestore.New(deps.Content, deps.Cache, logger)

	taskRunner.Register(tasks.EventsRefreshJob(events))
	taskRunner.Register(tasks.PagesWarmJob(pages))

	taskRunner.Start()
}
