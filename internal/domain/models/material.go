// internal/domain/models/material.go
package models

import "strings"

// Material is an individual learning resource (article, link, download)
// belonging to a Section via its category.
type Material struct {
	ID          FlexID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`

	// Visibility flags. A non-public material is never shown to an
	// anonymous viewer; a material requiring assessment completion is
	// only shown to viewers with at least one completed assessment.
	IsPublic           bool `json:"isMaterialPublic"`
	RequiresAssessment bool `json:"requiresAssessmentCompletion"`

	// Optional resource locators.
	ImageURL    string `json:"image_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	FileURL     string `json:"downloadable_file_url,omitempty"`
}

// ResourceURL returns the link target for this material. Precedence when
// several locators are present: downloadable file, then external link,
// then the internal detail page.
func (m Material) ResourceURL() string {
	if strings.TrimSpace(m.FileURL) != "" {
		return m.FileURL
	}
	if strings.TrimSpace(m.ExternalURL) != "" {
		return m.ExternalURL
	}
	return "/materials/" + m.ID.String()
}

// HasDownload reports whether the material links to a downloadable file.
func (m Material) HasDownload() bool {
	return strings.TrimSpace(m.FileURL) != ""
}
