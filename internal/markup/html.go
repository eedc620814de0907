package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// ignoredTags enclose content that never reaches the reader.
var ignoredTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

// blockTags break the surrounding text into lines so tables and lists
// don't collapse into a wall of text.
var blockTags = map[string]bool{
	"br":    true,
	"p":     true,
	"div":   true,
	"li":    true,
	"tr":    true,
	"table": true,
	"ul":    true,
	"ol":    true,
}

// FromHTML converts an HTML document into text decorated only with the
// dialect's anchor tags. Script, style and head content is dropped,
// block-level tags become newlines, anchors keep their href target, and
// all other tags are ignored while their inner text is preserved.
func FromHTML(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	ignoredDepth := 0
	openAnchors := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// Includes io.EOF; malformed trailing input ends the walk.
			return Normalize(b.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if ignoredTags[tok.Data] {
				if tok.Type == html.StartTagToken {
					ignoredDepth++
				}
				continue
			}
			if ignoredDepth > 0 {
				continue
			}
			if blockTags[tok.Data] {
				b.WriteByte('\n')
			}
			if tok.Data == "a" {
				// Anchors without an href contribute only their text.
				if href := attrValue(tok, "href"); href != "" {
					b.WriteString(`<a href="`)
					b.WriteString(EscapeAttr(href))
					b.WriteString(`">`)
					openAnchors++
				}
			}

		case html.EndTagToken:
			tok := z.Token()
			if ignoredTags[tok.Data] {
				if ignoredDepth > 0 {
					ignoredDepth--
				}
				continue
			}
			if ignoredDepth > 0 {
				continue
			}
			if blockTags[tok.Data] && tok.Data != "br" {
				b.WriteByte('\n')
			}
			if tok.Data == "a" && openAnchors > 0 {
				b.WriteString("</a>")
				openAnchors--
			}

		case html.TextToken:
			if ignoredDepth > 0 {
				continue
			}
			// Token() already decoded entities; re-escape so literal
			// angle brackets survive as text instead of markup.
			b.WriteString(Escape(z.Token().Data))
		}
	}
}

func attrValue(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
