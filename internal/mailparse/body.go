package mailparse

import (
	"strings"

	"github.com/senoth99/mforwarder/internal/markup"
)

// Body is the single extracted message body. WasHTML reports that the
// text came from HTML parts and is already markup-safe.
type Body struct {
	Text    string
	WasHTML bool
}

// ExtractBody selects the message body: non-blank text/plain parts win
// over text/html parts; HTML parts are concatenated and converted to
// the markup dialect; attachment-disposition parts are skipped. A
// message without any text part yields an empty Body.
func ExtractBody(m *Message) Body {
	var plainParts, htmlParts []string

	for _, p := range m.Parts {
		if strings.Contains(strings.ToLower(p.Disposition), "attachment") {
			continue
		}
		contentType := p.ContentType
		if contentType == "" {
			// RFC 2045 default for an undeclared leaf.
			contentType = "text/plain"
		}
		switch contentType {
		case "text/plain":
			if text := p.Text(); strings.TrimSpace(text) != "" {
				plainParts = append(plainParts, text)
			}
		case "text/html":
			if text := p.Text(); strings.TrimSpace(text) != "" {
				htmlParts = append(htmlParts, text)
			}
		}
	}

	if len(plainParts) > 0 {
		for i := range plainParts {
			plainParts[i] = strings.TrimSpace(plainParts[i])
		}
		return Body{Text: strings.Join(plainParts, "\n")}
	}
	if len(htmlParts) > 0 {
		return Body{Text: markup.FromHTML(strings.Join(htmlParts, "\n")), WasHTML: true}
	}
	return Body{}
}
