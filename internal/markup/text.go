package markup

import (
	"regexp"
	"strings"
)

// linkPattern matches a lightweight [label](url) syntax. The url must
// be http or https and may not contain whitespace or a closing paren.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)

// FormatPlain escapes a plain-text body for the markup dialect,
// rewriting [label](url) links into anchor tags. Text between matches
// is escaped as-is, preserving the original order.
func FormatPlain(text string) string {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return Escape(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(Escape(text[last:m[0]]))
		b.WriteString(`<a href="`)
		b.WriteString(EscapeAttr(text[m[4]:m[5]]))
		b.WriteString(`">`)
		b.WriteString(Escape(text[m[2]:m[3]]))
		b.WriteString("</a>")
		last = m[1]
	}
	b.WriteString(Escape(text[last:]))
	return b.String()
}
