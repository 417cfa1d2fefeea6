package mailer

import (
	"strings"
	"testing"
)

func TestContactMessageEmail(t *testing.T) {
	text, html := ContactMessageEmail(ContactMessageData{
		SiteName:    "PKS Lestari",
		ReferenceID: "ref-123",
		Name:        "Siti Rahma",
		Email:       "siti@example.com",
		Subject:     "Enrolment",
		Message:     "Line one\nLine two",
	})

	for _, want := range []string{"ref-123", "Siti Rahma", "siti@example.com", "Enrolment", "Line one"} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q", want)
		}
		if !strings.Contains(html, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestContactMessageEmailEscapesVisitorHTML(t *testing.T) {
	_, html := ContactMessageEmail(ContactMessageData{
		SiteName:    "PKS Lestari",
		ReferenceID: "ref-1",
		Name:        `<script>alert("x")</script>`,
		Email:       "a@b.com",
		Subject:     "<b>bold</b>",
		Message:     "<img src=x onerror=alert(1)>",
	})

	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") || strings.Contains(html, "<b>bold") {
		t.Error("visitor-supplied markup must be escaped in the html body")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
}
