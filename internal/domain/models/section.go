// internal/domain/models/section.go
package models

import "strings"

// Section statuses as served by the content API.
const (
	SectionStatusPublished = "published"
	SectionStatusDraft     = "draft"
)

// OrderSentinel is the effective sort key for sections whose order is
// missing or non-numeric. It is larger than any explicit order the CMS
// assigns, so unordered sections sort last.
const OrderSentinel = 999

// Section is a named grouping of learning materials (e.g. "Certification").
// Records come from the content API's section endpoints and may be sparse:
// order and content are optional, and id may arrive as a string or number.
type Section struct {
	ID       FlexID  `json:"id"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Order    FlexInt `json:"order"`
	Status   string  `json:"status"`
	Content  string  `json:"content,omitempty"`
}

// EffectiveOrder returns the sort key for this section, substituting
// OrderSentinel when order is absent or malformed.
func (s Section) EffectiveOrder() int {
	if !s.Order.Valid {
		return OrderSentinel
	}
	return s.Order.Value
}

// GroupLabel returns the display grouping label; category takes precedence
// over title when both are present.
func (s Section) GroupLabel() string {
	if strings.TrimSpace(s.Category) != "" {
		return s.Category
	}
	return s.Title
}

// IsPublished reports whether the section is eligible for display.
func (s Section) IsPublished() bool {
	return strings.EqualFold(strings.TrimSpace(s.Status), SectionStatusPublished)
}
