package mailparse

import (
	"mime"
	"strings"

	"github.com/emersion/go-message/charset"
)

var headerDecoder = mime.WordDecoder{CharsetReader: charset.Reader}

// DecodeHeader decodes a raw header value composed of plain text and/or
// RFC 2047 encoded words. Segments are concatenated in their original
// order. It never fails: an undecodable value falls back to the raw
// text with invalid bytes replaced.
func DecodeHeader(value string) string {
	if value == "" {
		return ""
	}
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		decoded = value
	}
	return strings.ToValidUTF8(decoded, "�")
}
