// internal/app/store/assessment/assessmentstore.go
package assessmentstore

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/pkslestari/portal/internal/app/system/contentapi"
	"go.uber.org/zap"
)

// Store resolves whether a viewer has completed at least one assessment,
// via the platform's assessment-responses endpoint.
type Store struct {
	api    *contentapi.Client
	logger *zap.Logger
}

// New creates an assessment store.
func New(api *contentapi.Client, logger *zap.Logger) *Store {
	return &Store{api: api, logger: logger}
}

// responseRecord is the relevant slice of an assessment response. years is
// opaque to the portal; only its non-emptiness matters.
type responseRecord struct {
	UserID json.RawMessage   `json:"user_id"`
	Years  []json.RawMessage `json:"years"`
}

// HasCompletedAssessment reports whether the platform has at least one
// completed assessment record for the user. Fail-closed: any error, an
// empty response, or an unexpected shape all yield false. Visibility
// gating has no notion of "unknown", so ambiguity resolves to the more
// restrictive answer here, never in the gate.
func (s *Store) HasCompletedAssessment(ctx context.Context, userID, token string) bool {
	if userID == "" || token == "" {
		return false
	}

	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("selected_only", "true")

	var records []responseRecord
	if err := s.api.GetJSON(ctx, "/assessment/user/v2/get-responses-2", q, token, &records); err != nil {
		s.logger.Warn("assessment status lookup failed, treating as not completed",
			zap.String("user_id", userID),
			zap.Error(err))
		return false
	}

	return len(records) > 0 && len(records[0].Years) > 0
}
