// Package fieldcheck implements debounced, per-field text validation.
//
// Each Field waits for a quiet period after the last edit, applies the local
// heuristics and, when they pass, asks a Checker for a remote opinion. Every
// edit bumps the field's generation, stops the pending timer and cancels any
// in-flight check, so a stale result can never overwrite a newer one.
package fieldcheck

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultQuietPeriod is how long a field must stay unchanged before it is
// evaluated.
const DefaultQuietPeriod = time.Second

// Checker asks the text-quality service about one value. An empty warning
// means the text is acceptable.
type Checker interface {
	Check(ctx context.Context, text, label string) (string, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, text, label string) (string, error)

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context, text, label string) (string, error) {
	return f(ctx, text, label)
}

// Evaluate decides the outcome for one value. Short values never warn,
// shouting is caught locally, and everything else goes to checker. When the
// checker fails (or is nil) the repeated-character heuristic is the fallback.
func Evaluate(ctx context.Context, checker Checker, value, label string) models.ValidationOutcome {
	if utf8.RuneCountInString(value) < MinLength {
		return models.ValidationOutcome{}
	}
	if IsShouting(value) {
		return models.ValidationOutcome{Warning: ShoutWarning}
	}
	if checker != nil {
		w, err := checker.Check(ctx, value, label)
		if err == nil {
			return models.ValidationOutcome{Warning: w}
		}
	}
	if HasRepeatedRun(value) {
		return models.ValidationOutcome{Warning: RepeatedWarning}
	}
	return models.ValidationOutcome{}
}

// Options tunes a Field. Zero values take defaults.
type Options struct {
	QuietPeriod time.Duration
	Timeout     time.Duration
	Log         *zap.Logger

	// OnSettle, when set, is called after a result has been applied.
	OnSettle func(models.ValidationOutcome)
}

func (o Options) withDefaults() Options {
	if o.QuietPeriod <= 0 {
		o.QuietPeriod = DefaultQuietPeriod
	}
	if o.Timeout <= 0 {
		o.Timeout = timeouts.Validate()
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

// Field validates one input.
type Field struct {
	label   string
	checker Checker
	opts    Options

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	outcome models.ValidationOutcome
	pending bool
	closed  bool
}

// NewField returns a Field that labels its values with label when asking
// checker.
func NewField(label string, checker Checker, opts Options) *Field {
	return &Field{label: label, checker: checker, opts: opts.withDefaults()}
}

// Edit records a new value. The current warning is cleared at once and an
// evaluation is scheduled after the quiet period.
func (f *Field) Edit(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	f.gen++
	f.stopLocked()
	f.outcome = models.ValidationOutcome{}

	if utf8.RuneCountInString(value) < MinLength {
		f.pending = false
		return
	}

	gen := f.gen
	f.pending = true
	f.timer = time.AfterFunc(f.opts.QuietPeriod, func() { f.run(gen, value) })
}

func (f *Field) run(gen uint64, value string) {
	f.mu.Lock()
	if gen != f.gen || f.closed {
		f.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.opts.Timeout)
	f.cancel = cancel
	f.mu.Unlock()

	out := Evaluate(ctx, f.checker, value, f.label)
	cancel()

	f.mu.Lock()
	if gen != f.gen || f.closed {
		f.mu.Unlock()
		f.opts.Log.Debug("discarding stale field result", zap.String("field", f.label))
		return
	}
	f.outcome = out
	f.pending = false
	f.cancel = nil
	f.timer = nil
	onSettle := f.opts.OnSettle
	f.mu.Unlock()

	if onSettle != nil {
		onSettle(out)
	}
}

// stopLocked stops the pending timer and cancels an in-flight check.
func (f *Field) stopLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// Outcome returns the current validation outcome.
func (f *Field) Outcome() models.ValidationOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Pending reports whether an evaluation is scheduled or running.
func (f *Field) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Close stops the field. Later edits are ignored and in-flight results are
// dropped.
func (f *Field) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.gen++
	f.pending = false
	f.stopLocked()
}

// Set groups the fields of one form session. Fields are created on first
// edit and are independent of each other.
type Set struct {
	checker Checker
	opts    Options

	mu     sync.Mutex
	fields map[string]*Field
	closed bool
}

// NewSet returns an empty Set whose fields share checker and opts.
func NewSet(checker Checker, opts Options) *Set {
	opts.OnSettle = nil
	return &Set{checker: checker, opts: opts, fields: make(map[string]*Field)}
}

// Edit feeds value to the named field, creating it with label if needed.
func (s *Set) Edit(name, label, value string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	f, ok := s.fields[name]
	if !ok {
		f = NewField(label, s.checker, s.opts)
		s.fields[name] = f
	}
	s.mu.Unlock()

	f.Edit(value)
}

// Warnings returns the non-empty warnings keyed by field name.
func (s *Set) Warnings() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string)
	for name, f := range s.fields {
		if o := f.Outcome(); o.HasWarning() {
			out[name] = o.Warning
		}
	}
	return out
}

// Pending returns the sorted names of fields still being evaluated.
func (s *Set) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for name, f := range s.fields {
		if f.Pending() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Close stops every field.
func (s *Set) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, f := range s.fields {
		f.Close()
	}
}
