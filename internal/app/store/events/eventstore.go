// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"time"

	"github.com/pkslestari/portal/internal/app/system/cache"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/domain/models"
	"go.uber.org/zap"
)

// listTTL is how long the fetched event list may be served from cache.
// Event detail pages are fetched fresh; only the list is hot enough to
// be worth caching.
const listTTL = 2 * time.Minute

// listCacheKey is the cache key for the full event list.
const listCacheKey = "events:list"

// Store fetches events from the content API, with an optional Redis cache
// in front of the list endpoint.
type Store struct {
	api    *contentapi.Client
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates an event store. cache may be nil.
func New(api *contentapi.Client, c *cache.Cache, logger *zap.Logger) *Store {
	return &Store{api: api, cache: c, logger: logger}
}

// List returns all events the content API serves, published or not;
// display filtering happens in the handler.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, listCacheKey, &events); err != nil {
			s.logger.Debug("event cache read failed", zap.Error(err))
		} else if hit {
			return events, nil
		}
	}

	if err := s.api.GetJSON(ctx, "/events/", nil, "", &events); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, listCacheKey, events, listTTL); err != nil {
			s.logger.Debug("event cache write failed", zap.Error(err))
		}
	}
	return events, nil
}

// GetByID returns a single event.
func (s *Store) GetByID(ctx context.Context, id string) (models.Event, error) {
	var event models.Event
	if err := s.api.GetJSON(ctx, "/events/"+id, nil, "", &event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// RefreshList fetches the event list from the content API and rewrites the
// cache entry, ignoring the current cached value. Used by the background
// cache-warming job.
func (s *Store) RefreshList(ctx context.Context) error {
	var events []models.Event
	if err := s.api.GetJSON(ctx, "/events/", nil, "", &events); err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.SetJSON(ctx, listCacheKey, events, listTTL)
	}
	return nil
}
