package mailparse

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// fallbackFilename names attachments that declare none.
const fallbackFilename = "attachment"

// Attachment is a leaf part destined for document delivery.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExtractAttachments returns every leaf part that carries a filename or
// an attachment disposition, in document order. Filenames are decoded
// from encoded-word form; a missing content type is sniffed from the
// payload. Parts whose payload could not be decoded are skipped.
func ExtractAttachments(m *Message) []Attachment {
	var attachments []Attachment
	for _, p := range m.Parts {
		isAttachment := strings.Contains(strings.ToLower(p.Disposition), "attachment")
		if p.Filename == "" && !isAttachment {
			continue
		}
		if p.Data == nil {
			continue
		}

		filename := fallbackFilename
		if p.Filename != "" {
			filename = DecodeHeader(p.Filename)
		}
		contentType := p.ContentType
		if contentType == "" {
			contentType = mimetype.Detect(p.Data).String()
		}

		attachments = append(attachments, Attachment{
			Filename:    filename,
			ContentType: contentType,
			Data:        p.Data,
		})
	}
	return attachments
}
