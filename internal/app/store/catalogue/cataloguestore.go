// internal/app/store/catalogue/cataloguestore.go
package cataloguestore

import (
	"context"

	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"github.com/pkslestari/portal/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store fetches the two raw inputs of the learning-materials catalogue,
// sections and materials, from the content API. The endpoint pair depends
// on the viewer: anonymous visitors read the public filtered endpoints,
// logged-in viewers read the full per-user lists with their access token.
type Store struct {
	api    *contentapi.Client
	logger *zap.Logger
}

// New creates a catalogue store.
func New(api *contentapi.Client, logger *zap.Logger) *Store {
	return &Store{api: api, logger: logger}
}

// Fetch retrieves sections and materials concurrently. The two fetches
// resolve independently and in any order; Fetch returns only once both
// are done. On failure the corresponding slice is nil and the first error
// is returned alongside whatever did arrive, so callers can degrade to a
// partial or empty catalogue instead of crashing.
func (s *Store) Fetch(ctx context.Context, viewer models.ViewerContext) ([]models.Section, []models.Material, error) {
	sectionsPath, materialsPath := "/learning-materials-sections/public", "/learning-materials/public/list"
	token := ""
	if viewer.IsLoggedIn {
		sectionsPath, materialsPath = "/learning-materials-sections/user/list", "/learning-materials/user/list"
		token = viewer.AccessToken
	}

	var (
		sections  []models.Section
		materials []models.Material
	)

	// Deliberately not errgroup.WithContext: one failing fetch must not
	// cancel the other, the surviving half still renders.
	var g errgroup.Group
	g.Go(func() error {
		if err := s.api.GetJSON(ctx, sectionsPath, nil, token, &sections); err != nil {
			s.logger.Warn("failed to fetch catalogue sections", zap.Error(err))
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := s.api.GetJSON(ctx, materialsPath, nil, token, &materials); err != nil {
			s.logger.Warn("failed to fetch catalogue materials", zap.Error(err))
			return err
		}
		return nil
	})

	err := g.Wait()
	return sections, materials, err
}
