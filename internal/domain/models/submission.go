// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is one attempt to relay a record to the central spreadsheet.
// Failed attempts keep the full row so it can be re-entered by hand.
type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Titulo     string   `bson:"titulo" json:"titulo"`
	Asignatura string   `bson:"asignatura,omitempty" json:"asignatura,omitempty"`
	Keywords   []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Row        SheetRow `bson:"row" json:"row"`

	Caller    string `bson:"caller" json:"caller"` // hashed client fingerprint, never the raw IP
	UserAgent string `bson:"user_agent,omitempty" json:"-"`

	Kind          SubmissionKind `bson:"kind" json:"kind"`
	Success       bool           `bson:"success" json:"success"`
	FailureReason string         `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
}
