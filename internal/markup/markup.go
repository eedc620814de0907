// Package markup renders text for the Telegram HTML dialect, which
// accepts only a small tag subset (bold, anchors). Everything leaving
// this package is safe to embed in a sendMessage payload.
package markup

import (
	"regexp"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Escape makes arbitrary text safe for the markup dialect.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes text for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize cleans up converted text: CRLF becomes LF, trailing
// whitespace is stripped per line, leading and trailing blank lines are
// dropped, and runs of three or more newlines collapse to a single
// blank line.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return blankRuns.ReplaceAllString(strings.Join(lines[start:end], "\n"), "\n\n")
}
