// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"time"

	"github.com/pkslestari/portal/internal/app/system/cache"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/normalize"
	"github.com/pkslestari/portal/internal/domain/models"
	"go.uber.org/zap"
)

// pageTTL is how long a fetched static page may be served from cache.
const pageTTL = 5 * time.Minute

// Store fetches static content pages from the content API, with an
// optional short-lived Redis cache in front.
type Store struct {
	api    *contentapi.Client
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates a page store. cache may be nil, in which case every read
// goes to the content API.
func New(api *contentapi.Client, c *cache.Cache, logger *zap.Logger) *Store {
	return &Store{api: api, cache: c, logger: logger}
}

// GetBySlug returns the static page for slug. The cache is consulted
// first; cache failures are logged and ignored, never surfaced.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.StaticPage, error) {
	slug = normalize.Slug(slug)
	key := "page:" + slug

	var page models.StaticPage
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, key, &page); err != nil {
			s.logger.Debug("page cache read failed", zap.String("slug", slug), zap.Error(err))
		} else if hit {
			return page, nil
		}
	}

	if err := s.api.GetJSON(ctx, "/static-pages/"+slug, nil, "", &page); err != nil {
		return models.StaticPage{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, page, pageTTL); err != nil {
			s.logger.Debug("page cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}
	return page, nil
}
