package mailer

import (
	"html"
	"strings"
)

// ContactMessageData contains the data for a contact form notification
// sent to the support inbox.
type ContactMessageData struct {
	SiteName    string
	ReferenceID string
	Name        string
	Email       string
	Subject     string
	Message     string
}

// ContactMessageEmail generates both plain text and HTML versions of the
// contact form notification. All visitor-supplied fields are escaped in
// the HTML version.
func ContactMessageEmail(data ContactMessageData) (textBody, htmlBody string) {
	textBody = "New contact message via " + data.SiteName + "\n\n" +
		"Reference: " + data.ReferenceID + "\n" +
		"From: " + data.Name + " <" + data.Email + ">\n" +
		"Subject: " + data.Subject + "\n\n" +
		data.Message + "\n"

	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:600px">`)
	b.WriteString(`<h2>New contact message via ` + html.EscapeString(data.SiteName) + `</h2>`)
	b.WriteString(`<p><strong>Reference:</strong> ` + html.EscapeString(data.ReferenceID) + `</p>`)
	b.WriteString(`<p><strong>From:</strong> ` + html.EscapeString(data.Name) +
		` &lt;` + html.EscapeString(data.Email) + `&gt;</p>`)
	b.WriteString(`<p><strong>Subject:</strong> ` + html.EscapeString(data.Subject) + `</p>`)
	b.WriteString(`<hr>`)
	for _, line := range strings.Split(data.Message, "\n") {
		b.WriteString(`<p>` + html.EscapeString(line) + `</p>`)
	}
	b.WriteString(`</div>`)
	htmlBody = b.String()

	return textBody, htmlBody
}
