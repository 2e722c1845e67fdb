// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/system/fingerprint"
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Logging modes.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// Recorder persists submission attempts. *submissions.Store satisfies it.
type Recorder interface {
	Insert(ctx context.Context, sub models.Submission) error
}

// Config holds submission logging configuration.
type Config struct {
	// Submissions controls where save-resource attempts are recorded.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Submissions string
}

// Logger records every persistence attempt to MongoDB and structured logs.
type Logger struct {
	store  Recorder
	hasher *fingerprint.Hasher
	zapLog *zap.Logger
	config Config
}

// New creates a new submission Logger. store may be nil when no database is
// configured; database writes are then skipped.
func New(store Recorder, hasher *fingerprint.Hasher, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, hasher: hasher, zapLog: zapLog, config: config}
}

func (l *Logger) mode() string {
	m := strings.ToLower(strings.TrimSpace(l.config.Submissions))
	if m == "" {
		return ModeAll
	}
	return m
}

// logToZap logs the submission with consistent structure.
func (l *Logger) logToZap(sub models.Submission) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("event_type", "resource_submission"),
		zap.String("kind", string(sub.Kind)),
		zap.Bool("success", sub.Success),
		zap.String("titulo", sub.Titulo),
		zap.String("caller", sub.Caller),
	}
	if sub.Asignatura != "" {
		fields = append(fields, zap.String("asignatura", sub.Asignatura))
	}
	if sub.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", sub.FailureReason))
	}

	if sub.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records a submission based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, sub models.Submission) {
	if l == nil {
		return
	}

	mode := l.mode()
	if mode == ModeOff {
		return
	}
	if mode == ModeAll || mode == ModeLog {
		l.logToZap(sub)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Insert(ctx, sub); err != nil {
			l.zapLog.Error("failed to store submission",
				zap.Error(err),
				zap.String("titulo", sub.Titulo),
			)
		}
	}
}

// Submission records one save-resource attempt for the row received in r.
// The caller's IP is only kept as a keyed hash.
func (l *Logger) Submission(ctx context.Context, r *http.Request, row models.SheetRow, kind models.SubmissionKind, reason string) {
	if l == nil {
		return
	}
	var keywords []string
	for _, k := range []string{row.Keyword1, row.Keyword2, row.Keyword3} {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	l.Log(ctx, models.Submission{
		Titulo:        row.Titulo,
		Asignatura:    row.Asignatura,
		Keywords:      keywords,
		Row:           row,
		Caller:        l.hasher.Of(ratelimit.ClientIP(r)),
		UserAgent:     r.UserAgent(),
		Kind:          kind,
		Success:       kind == models.SubmissionOK,
		FailureReason: reason,
	})
}
