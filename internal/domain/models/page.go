// internal/domain/models/page.go
package models

// StaticPage is a CMS-managed content fragment served by the content API
// at /static-pages/{slug}. Title and content are both optional; content is
// rich text that may be empty or whitespace-only.
type StaticPage struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Static page slugs consumed by the portal.
const (
	PageSlugLanding    = "landing"
	PageSlugAbout      = "about"
	PageSlugContact    = "contact"
	PageSlugPKSLestari = "pkslestari"
	PageSlugBlogs      = "blogs"
	PageSlugFooter     = "footer"
)

// Defaults used when the content API is unavailable or a fragment is empty.
const (
	DefaultSiteName     = "PKS Lestari"
	DefaultLandingTitle = "Sustainable palm oil starts here"
	DefaultFooterHTML   = `<p>&copy; PKS Lestari</p>`
	DefaultPlaceholder  = "Content is not available right now. Please check back later."
)
