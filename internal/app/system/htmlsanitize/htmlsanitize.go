// Package htmlsanitize prepares CMS-supplied rich text for display.
// It uses bluemonday to strip potentially dangerous HTML while preserving
// safe formatting, and a real HTML tokenizer to decide whether a fetched
// content block is effectively empty.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// UGC policy as base; the CMS editor also emits tables and a few
		// extra inline elements.
		policy = bluemonday.UGCPolicy()
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowAttrs("class").OnElements("table", "th", "td", "tr")
		policy.AllowElements("u", "s", "sub", "sup", "mark")
		policy.AllowImages()
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes while preserving safe formatting.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return getPolicy().Sanitize(raw)
}

// SanitizeToHTML sanitizes HTML input and returns it as template.HTML,
// which is safe to render directly in Go templates without escaping.
func SanitizeToHTML(raw string) template.HTML {
	return template.HTML(Sanitize(raw))
}

// ExtractText returns the text content of an HTML fragment with markup
// removed and whitespace runs collapsed to single spaces. It tokenizes with
// a real HTML parser rather than a regular expression, so malformed markup
// from the CMS cannot confuse it. Script and style bodies do not count as
// text.
func ExtractText(raw string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way we keep what we have.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// minContentLength is the threshold below which extracted text is treated
// as empty; fragments like "&nbsp;" or a stray punctuation mark left behind
// by the CMS editor should not suppress the placeholder, while a real word
// as short as "Hi" still counts as content.
const minContentLength = 2

// IsContentEmpty reports whether a fetched rich-text block has no content
// worth rendering: after stripping markup and collapsing whitespace, fewer
// than minContentLength characters remain. Used uniformly before rendering
// fetched content blocks; callers fall back to a placeholder when it
// returns true.
func IsContentEmpty(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	return len([]rune(ExtractText(raw))) < minContentLength
}

// PrepareForDisplay sanitizes fetched content and returns it ready for
// rendering, or the empty string when the block should not render at all.
func PrepareForDisplay(raw string) template.HTML {
	if IsContentEmpty(raw) {
		return ""
	}
	return SanitizeToHTML(raw)
}
