// internal/domain/models/event.go
package models

import (
	"strings"
	"time"
)

// Event statuses as served by the content API.
const (
	EventStatusPublished = "published"
	EventStatusDraft     = "draft"
)

// Event is a platform event (webinar, workshop, launch) served by the
// content API's events endpoints.
type Event struct {
	ID          FlexID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // ISO-8601
	Location    string `json:"location,omitempty"`
	Status      string `json:"status"`
	ExternalURL string `json:"external_url,omitempty"`
	Image       string `json:"image"`
}

// IsPublished reports whether the event is eligible for display.
func (e Event) IsPublished() bool {
	return strings.EqualFold(strings.TrimSpace(e.Status), EventStatusPublished)
}

// When parses the event date. The zero time and false are returned when
// the date is missing or not ISO-8601.
func (e Event) When() (time.Time, bool) {
	raw := strings.TrimSpace(e.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsUpcoming reports whether the event happens at or after now. Events with
// an unparseable date are treated as upcoming so they stay visible.
func (e Event) IsUpcoming(now time.Time) bool {
	t, ok := e.When()
	if !ok {
		return true
	}
	return !t.Before(now)
}
