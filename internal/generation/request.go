package generation

import (
	"fmt"
	"strings"
)

// MIMETypePDF is the most common document type sent by students.
const MIMETypePDF = "application/pdf"

// Attachment is an inline binary payload sent alongside the prompt.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// IsImage reports whether the attachment carries an image.
func (a *Attachment) IsImage() bool {
	return a != nil && strings.HasPrefix(strings.ToLower(a.MIMEType), "image/")
}

// IsDocument reports whether the attachment is a non-image payload such as
// a PDF. Documents are never sent to the fast provider.
func (a *Attachment) IsDocument() bool {
	return a != nil && !a.IsImage()
}

// Request is a single generation call. It carries no identity and is not persisted.
type Request struct {
	// Prompt is the fully assembled instruction text
	Prompt string

	// Attachment is an optional image or document payload
	Attachment *Attachment

	// SubjectHint biases model choice for the fast provider only
	SubjectHint string
}

// Validate checks the request before any provider is contacted.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRequest)
	}
	if r.Attachment != nil {
		if len(r.Attachment.Data) == 0 {
			return fmt.Errorf("%w: attachment data cannot be empty", ErrInvalidRequest)
		}
		if r.Attachment.MIMEType == "" {
			return fmt.Errorf("%w: attachment mime type cannot be empty", ErrInvalidRequest)
		}
	}
	return nil
}
