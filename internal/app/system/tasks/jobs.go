package tasks

import (
	"context"
	"errors"
	"time"

	eventstore "github.com/pkslestari/portal/internal/app/store/events"
	pagestore "github.com/pkslestari/portal/internal/app/store/pages"
	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/app/system/timeouts"
	"github.com/pkslestari/portal/internal/domain/models"
)

// EventsRefreshJob keeps the cached event list warm so the listing page
// rarely waits on the content API.
func EventsRefreshJob(events *eventstore.Store) Job {
	return Job{
		Name:     "events-refresh",
		Interval: 90 * time.Second,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
			defer cancel()
			return events.RefreshList(ctx)
		},
	}
}

// PagesWarmJob pre-fetches every static page the portal renders so a cold
// cache never shows placeholders after a deploy. Slugs the CMS has not
// created yet are skipped.
func PagesWarmJob(pages *pagestore.Store) Job {
	slugs := []string{
		models.PageSlugLanding,
		models.PageSlugAbout,
		models.PageSlugContact,
		models.PageSlugPKSLestari,
		models.PageSlugBlogs,
		models.PageSlugFooter,
	}
	return Job{
		Name:     "pages-warm",
		Interval: 4 * time.Minute,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
			defer cancel()

			for _, slug := range slugs {
				if _, err := pages.GetBySlug(ctx, slug); err != nil {
					if errors.Is(err, contentapi.ErrNotFound) {
						continue
					}
					return err
				}
			}
			return nil
		},
	}
}
