// internal/app/features/registro/handler.go
package registro

import (
	"context"
	"net/http"

	"github.com/dalemusser/registro/internal/app/export/orchestrator"
	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/system/auth"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Finalizer runs the export pipeline for a finished record.
type Finalizer interface {
	Run(ctx context.Context, r models.ResourceRecord) orchestrator.Result
}

// Contact is the person named on every error panel for manual follow-up.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Handler serves the form session endpoints under /registro.
type Handler struct {
	Sessions *formsessions.Registry
	Cookies  *auth.SessionManager
	Pipeline Finalizer
	Contact  Contact
	Log      *zap.Logger
}

// NewHandler constructs a registro Handler.
func NewHandler(sessions *formsessions.Registry, cookies *auth.SessionManager, pipeline Finalizer, contact Contact, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Cookies:  cookies,
		Pipeline: pipeline,
		Contact:  contact,
		Log:      logger,
	}
}

// current returns the caller's session, starting one (and setting the
// cookie) when the request carries none or an expired one.
func (h *Handler) current(w http.ResponseWriter, r *http.Request) *formsessions.Session {
	sess, created := h.Sessions.GetOrCreate(h.Cookies.FormSessionID(r))
	if created {
		if err := h.Cookies.SetFormSessionID(w, r, sess.ID); err != nil {
			h.Log.Warn("registro: failed to set session cookie", zap.Error(err))
		}
		h.Log.Debug("registro: form session started", zap.String("session_id", sess.ID))
	}
	return sess
}

// existing returns the caller's session without creating one. It writes a
// 404 and returns false when there is none.
func (h *Handler) existing(w http.ResponseWriter, r *http.Request) (*formsessions.Session, bool) {
	id := h.Cookies.FormSessionID(r)
	if id != "" {
		if sess, ok := h.Sessions.Get(id); ok {
			return sess, true
		}
	}
	jsonio.Error(w, http.StatusNotFound, "No hay un registro en curso")
	return nil, false
}
