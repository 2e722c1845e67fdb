// internal/domain/models/metadata.go
package models

// GeneratedMetadata is the AI-derived keyword triple and header phrase
// attached to a record before persistence. It is never mutated after creation.
type GeneratedMetadata struct {
	Keywords [3]string `json:"keywords"`
	Header   string    `json:"header"`
}

// ValidationOutcome is the per-field text-quality result.
// An empty Warning means the field is fine.
type ValidationOutcome struct {
	Warning string `json:"warning,omitempty"`
}

// HasWarning reports whether a warning should be shown.
func (v ValidationOutcome) HasWarning() bool {
	return v.Warning != ""
}
