// Package mailparse turns raw RFC 5322 bytes into an immutable view of
// the message: decoded headers plus an ordered list of leaf MIME parts.
// Multipart containers are structural only and never retained.
package mailparse

import (
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-message"

	// Register decoders for non-UTF-8 charsets (windows-1252, iso-8859-*, ...).
	_ "github.com/emersion/go-message/charset"
)

// Part is one leaf of the MIME tree.
type Part struct {
	ContentType string // lowercased media type, "" when undeclared
	Disposition string // content-disposition value, "" when absent
	Filename    string // declared filename, possibly still encoded-word form
	Data        []byte // decoded payload, nil when it could not be decoded
}

// Text returns the payload as UTF-8 text with invalid bytes replaced.
func (p Part) Text() string {
	return strings.ToValidUTF8(string(p.Data), "�")
}

// Message is a parsed, read-only message.
type Message struct {
	header message.Header
	Parts  []Part
}

// Header returns the decoded value of the named header, "" when absent.
func (m *Message) Header(name string) string {
	return DecodeHeader(m.header.Get(name))
}

// Parse converts raw message bytes into a Message. It never fails:
// input that cannot be parsed at all degrades to a single text/plain
// part holding the raw bytes.
func Parse(raw []byte) *Message {
	ent, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return &Message{Parts: []Part{{ContentType: "text/plain", Data: raw}}}
	}

	m := &Message{header: ent.Header}
	collectParts(ent, &m.Parts)
	return m
}

// collectParts walks the entity tree in document order, appending every
// leaf. A malformed sub-part ends the walk of its container; parts seen
// so far are kept.
func collectParts(ent *message.Entity, parts *[]Part) {
	if mr := ent.MultipartReader(); mr != nil {
		for {
			sub, err := mr.NextPart()
			if err == io.EOF {
				return
			}
			if err != nil && !message.IsUnknownCharset(err) {
				return
			}
			collectParts(sub, parts)
		}
	}

	contentType, ctParams, err := ent.Header.ContentType()
	// go-message substitutes text/plain for a missing header; keep ""
	// so extractors can tell declared from undeclared.
	if err != nil || ent.Header.Get("Content-Type") == "" {
		contentType = ""
	}
	disposition, dispParams, err := ent.Header.ContentDisposition()
	if err != nil {
		disposition = ent.Header.Get("Content-Disposition")
	}
	filename := dispParams["filename"]
	if filename == "" {
		filename = ctParams["name"]
	}

	data, err := io.ReadAll(ent.Body)
	if err != nil {
		data = nil
	}

	*parts = append(*parts, Part{
		ContentType: contentType,
		Disposition: disposition,
		Filename:    filename,
		Data:        data,
	})
}
