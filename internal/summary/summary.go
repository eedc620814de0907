// Package summary composes the notification text for one message.
package summary

import (
	"net/mail"
	"strings"

	"github.com/senoth99/mforwarder/internal/mailparse"
	"github.com/senoth99/mforwarder/internal/markup"
)

// previewLines caps the body preview.
const previewLines = 12

// Build assembles the fixed-format notification: title, forwarded-from,
// sender, date, subject, then a blank line and a preview of at most 12
// body lines. The account username stands in when the To header has no
// parseable address. The result is markup-safe.
func Build(m *mailparse.Message, account string) string {
	subject := markup.Escape(m.Header("Subject"))
	from := markup.Escape(m.Header("From"))
	date := markup.Escape(m.Header("Date"))

	body := mailparse.ExtractBody(m)
	preview := previewOf(body)

	forwardedFrom := RecipientAddress(m.Header("To"))
	if forwardedFrom == "" {
		forwardedFrom = account
	}

	lines := []string{
		"📬 <b>New message</b>",
		"<b>Forwarded from:</b> " + markup.Escape(forwardedFrom),
		"<b>From:</b> " + from,
		"<b>Date:</b> " + date,
		"<b>Subject:</b> " + subject,
	}
	if preview != "" {
		lines = append(lines, "", preview)
	}
	return strings.Join(lines, "\n")
}

// previewOf trims the body to the preview cap. HTML bodies are already
// markup-safe; plain bodies still need escaping and link rewriting.
func previewOf(body mailparse.Body) string {
	text := strings.ReplaceAll(body.Text, "\r\n", "\n")
	bodyLines := strings.Split(strings.TrimSpace(text), "\n")
	if len(bodyLines) > previewLines {
		bodyLines = bodyLines[:previewLines]
	}
	preview := strings.Join(bodyLines, "\n")
	if preview == "" || body.WasHTML {
		return preview
	}
	return markup.FormatPlain(preview)
}

// RecipientAddress extracts the address portion of the first entry in
// an RFC 5322 address list header. It returns "" when the header is
// empty or unparseable.
func RecipientAddress(header string) string {
	if header == "" {
		return ""
	}
	addresses, err := mail.ParseAddressList(header)
	if err != nil || len(addresses) == 0 {
		return ""
	}
	return addresses[0].Address
}
