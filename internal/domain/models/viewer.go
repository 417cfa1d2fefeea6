// internal/domain/models/viewer.go
package models

// ViewerContext carries the facts about the current visitor that content
// visibility decisions need. It is constructed once per request and passed
// explicitly; pure logic never reads ambient session state.
type ViewerContext struct {
	// UserID and AccessToken identify the platform account, when present.
	// IsLoggedIn is true only when both are present.
	UserID      string
	AccessToken string
	IsLoggedIn  bool

	// HasCompletedAssessment is true only for a logged-in viewer for whom
	// the platform reports at least one completed assessment. Callers that
	// cannot resolve it must leave it false (fail closed).
	HasCompletedAssessment bool
}

// Anonymous returns the viewer context for a visitor with no session.
func Anonymous() ViewerContext {
	return ViewerContext{}
}
