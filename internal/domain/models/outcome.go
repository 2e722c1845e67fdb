// internal/domain/models/outcome.go
package models

// SubmissionStatus drives the terminal screen of a form session.
// It only moves forward: idle -> success or idle -> error.
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusSuccess SubmissionStatus = "success"
	StatusError   SubmissionStatus = "error"
)

// SubmissionKind distinguishes why a record did or did not reach the central store.
type SubmissionKind string

const (
	SubmissionOK          SubmissionKind = "ok"
	SubmissionRejected    SubmissionKind = "rejected"     // persistence endpoint refused the input (400/413)
	SubmissionRateLimited SubmissionKind = "rate_limited" // 429
	SubmissionUnavailable SubmissionKind = "unavailable"  // transport error, 5xx, or no acknowledgment
)

// Status maps a submission kind onto the terminal status.
func (k SubmissionKind) Status() SubmissionStatus {
	if k == SubmissionOK {
		return StatusSuccess
	}
	return StatusError
}
