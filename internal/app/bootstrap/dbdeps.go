// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/pkslestari/portal/internal/app/system/cache"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/mailer"
)

// DBDeps bundles the backend clients this app connects to during startup.
//
// The portal owns no database of its own; its "DB" is the Lestari content
// API, fronted by an optional Redis cache. The struct is created in
// ConnectDB and passed to Startup, BuildHandler, and Shutdown.
type DBDeps struct {
	// Content is the HTTP client for the Lestari content API.
	Content *contentapi.Client

	// Cache is the Redis cache in front of the content API.
	// Nil when the portal runs without a cache.
	Cache *cache.Cache

	// Mailer delivers contact form notifications.
	Mailer *mailer.Mailer
}
