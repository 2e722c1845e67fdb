package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/registro/internal/app/system/auditlog"
	"github.com/dalemusser/registro/internal/app/system/fingerprint"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memRecorder struct {
	mu   sync.Mutex
	subs []models.Submission
	err  error
}

func (m *memRecorder) Insert(ctx context.Context, sub models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.subs = append(m.subs, sub)
	return nil
}

func row() models.SheetRow {
	return models.SheetRow{
		Titulo:          "=HACK",
		Descripcion:     "ok desc",
		Responsabilidad: "Autor: Ana",
		Keyword1:        "Matemáticas",
		Keyword2:        "Didáctica",
	}
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("POST", "/api/save-resource", nil)

	logger.Log(context.Background(), models.Submission{})
	logger.Submission(context.Background(), req, row(), models.SubmissionOK, "")
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode     string
		wantDB   int
		wantLogs int
	}{
		{"all", 1, 1},
		{"", 1, 1},
		{"db", 1, 0},
		{"log", 0, 1},
		{"off", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			rec := &memRecorder{}
			logger := auditlog.New(rec, fingerprint.New("k"), zap.New(core), auditlog.Config{Submissions: tt.mode})

			req := httptest.NewRequest("POST", "/api/save-resource", nil)
			logger.Submission(context.Background(), req, row(), models.SubmissionRejected, "formula")

			if len(rec.subs) != tt.wantDB {
				t.Errorf("db writes = %d, want %d", len(rec.subs), tt.wantDB)
			}
			if logs.Len() != tt.wantLogs {
				t.Errorf("log entries = %d, want %d", logs.Len(), tt.wantLogs)
			}
		})
	}
}

func TestLogger_Submission_HashesCaller(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, fingerprint.New("k"), zap.NewNop(), auditlog.Config{Submissions: "db"})

	req := httptest.NewRequest("POST", "/api/save-resource", nil)
	req.RemoteAddr = "203.0.113.5:4444"
	logger.Submission(context.Background(), req, row(), models.SubmissionRejected, "value starts with =")

	if len(rec.subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(rec.subs))
	}
	got := rec.subs[0]
	if got.Caller == "" || strings.Contains(got.Caller, "203.0.113.5") {
		t.Errorf("caller should be a hash, got %q", got.Caller)
	}
	if got.Success {
		t.Error("rejected submission recorded as success")
	}
	if len(got.Keywords) != 2 {
		t.Errorf("keywords = %v, want the two non-empty ones", got.Keywords)
	}
	if got.FailureReason != "value starts with =" || got.Row.Titulo != "=HACK" {
		t.Errorf("submission not recorded intact: %+v", got)
	}
}

func TestLogger_StoreErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rec := &memRecorder{err: errors.New("db down")}
	logger := auditlog.New(rec, nil, zap.New(core), auditlog.Config{Submissions: "db"})

	logger.Log(context.Background(), models.Submission{Titulo: "x", Kind: models.SubmissionOK, Success: true})

	if logs.FilterMessage("failed to store submission").Len() != 1 {
		t.Error("expected the store failure to be logged")
	}
}

func TestLogger_NilStore(t *testing.T) {
	logger := auditlog.New(nil, nil, zap.NewNop(), auditlog.Config{Submissions: "all"})
	logger.Log(context.Background(), models.Submission{Titulo: "x"})
}
