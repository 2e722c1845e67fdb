// internal/domain/models/export.go
package models

// Document is a rendered file ready to hand to the user.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportOutcome is the stored result of finalizing a form session. The
// submission and the document are reported independently.
type ExportOutcome struct {
	Metadata   GeneratedMetadata `json:"metadata"`
	Kind       SubmissionKind    `json:"result"`
	Status     SubmissionStatus  `json:"status"`
	HTTPStatus int               `json:"httpStatus,omitempty"`
	Message    string            `json:"message,omitempty"`

	Document    *Document `json:"-"`
	DocumentErr string    `json:"documentError,omitempty"`
}

// DocumentReady reports whether a receipt document was produced.
func (o ExportOutcome) DocumentReady() bool {
	return o.Document != nil && len(o.Document.Data) > 0
}
