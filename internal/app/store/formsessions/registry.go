// Package formsessions keeps the in-progress form of each browser session.
//
// A session owns exactly one ResourceRecord and the field validators that
// watch it. Records live only in memory: they are discarded when the
// session is deleted or idles out.
package formsessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/registro/internal/app/fieldcheck"
	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/google/uuid"
)

// ErrFrozen is returned when a finalized session is modified.
var ErrFrozen = errors.New("formsessions: session is finalized")

// Session is one user's form.
type Session struct {
	ID string

	mu       sync.Mutex
	record   models.ResourceRecord
	fields   *fieldcheck.Set
	frozen   bool
	outcome  *models.ExportOutcome
	lastSeen time.Time
}

// Record returns a copy of the current answers.
func (s *Session) Record() models.ResourceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Update applies fn to the record. It fails with ErrFrozen once the session
// has been finalized, and leaves the record untouched when fn fails. fn runs
// under the session lock and a nil return always commits.
func (s *Session) Update(fn func(*models.ResourceRecord) error) (models.ResourceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.record.Clone(), ErrFrozen
	}
	next := s.record.Clone()
	if err := fn(&next); err != nil {
		return s.record.Clone(), err
	}
	s.record = next
	return s.record.Clone(), nil
}

// Fields returns the session's field validators.
func (s *Session) Fields() *fieldcheck.Set {
	return s.fields
}

// Freeze marks the session read-only and returns the record to export.
// Only the first call succeeds.
func (s *Session) Freeze() (models.ResourceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.record.Clone(), ErrFrozen
	}
	s.frozen = true
	return s.record.Clone(), nil
}

// Frozen reports whether finalize has started.
func (s *Session) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// SetOutcome stores the result of finalizing.
func (s *Session) SetOutcome(o models.ExportOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = &o
}

// Outcome returns the stored finalize result, if any.
func (s *Session) Outcome() (models.ExportOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return models.ExportOutcome{}, false
	}
	return *s.outcome, true
}

// Status is idle until finalize completes, then success or error.
func (s *Session) Status() models.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return models.StatusIdle
	}
	return s.outcome.Status
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry holds the live sessions. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	newFields func() *fieldcheck.Set
	now       func() time.Time
}

// New returns an empty Registry. newFields builds the validator set for each
// new session; nil gives sessions a set without a remote checker.
func New(newFields func() *fieldcheck.Set) *Registry {
	if newFields == nil {
		newFields = func() *fieldcheck.Set { return fieldcheck.NewSet(nil, fieldcheck.Options{}) }
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		newFields: newFields,
		now:       time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Create starts a new session with a fresh record.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &Session{
		ID:       uuid.NewString(),
		record:   models.NewResourceRecord(),
		fields:   r.newFields(),
		lastSeen: r.now(),
	}
	r.sessions[s.ID] = s
	return s
}

// Get returns the session with id and marks it as active.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	now := r.now()
	r.mu.Unlock()
	if ok {
		s.touch(now)
	}
	return s, ok
}

// GetOrCreate returns the session with id, or a new one when id is unknown.
func (r *Registry) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// Delete discards a session and stops its validators.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.fields.Close()
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseInactive discards sessions idle for longer than threshold and
// returns how many were removed.
func (r *Registry) CloseInactive(ctx context.Context, threshold time.Duration) (int64, error) {
	r.mu.Lock()
	cutoff := r.now().Add(-threshold)
	var stale []*Session
	for id, s := range r.sessions {
		if err := ctx.Err(); err != nil {
			r.mu.Unlock()
			return 0, err
		}
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.fields.Close()
	}
	return int64(len(stale)), nil
}

// CloseAll discards every session. Called on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range all {
		s.fields.Close()
	}
}
