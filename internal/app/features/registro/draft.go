// internal/app/features/registro/draft.go
package registro

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/system/inputval"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/limits"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

type stepView struct {
	Step       int    `json:"step"`
	Title      string `json:"title"`
	CanProceed bool   `json:"canProceed"`
}

type draftView struct {
	ID       string                  `json:"id"`
	Record   models.ResourceRecord   `json:"record"`
	Status   models.SubmissionStatus `json:"status"`
	Frozen   bool                    `json:"frozen"`
	Warnings map[string]string       `json:"warnings"`
	Pending  []string                `json:"pending"`
	Steps    []stepView              `json:"steps"`
	Complete bool                    `json:"complete"`
}

func steps(r models.ResourceRecord) []stepView {
	out := make([]stepView, len(models.StepTitles))
	for i, title := range models.StepTitles {
		out[i] = stepView{Step: i, Title: title, CanProceed: r.CanProceed(i)}
	}
	return out
}

func (h *Handler) view(sess *formsessions.Session) draftView {
	rec := sess.Record()
	pending := sess.Fields().Pending()
	if pending == nil {
		pending = []string{}
	}
	return draftView{
		ID:       sess.ID,
		Record:   rec,
		Status:   sess.Status(),
		Frozen:   sess.Frozen(),
		Warnings: sess.Fields().Warnings(),
		Pending:  pending,
		Steps:    steps(rec),
		Complete: rec.Complete(),
	}
}

// ServeDraft handles GET /registro/draft.
func (h *Handler) ServeDraft(w http.ResponseWriter, r *http.Request) {
	sess := h.current(w, r)
	jsonio.Write(w, http.StatusOK, h.view(sess))
}

// HandlePatch handles PATCH /registro/draft.
//
// The body is a JSON object of field names to values. Checked text fields
// are handed to the session's validators; their warnings show up later in
// GET /registro/warnings.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := jsonio.Decode(w, r, limits.MaxDraftPatch, &patch); err != nil {
		jsonio.Error(w, jsonio.DecodeStatus(err), "Cuerpo de la solicitud inválido")
		return
	}

	sess := h.current(w, r)
	_, err := sess.Update(func(rec *models.ResourceRecord) error {
		if err := applyPatch(rec, patch); err != nil {
			return err
		}
		if res := inputval.Validate(*rec); res.HasErrors() {
			return errors.New(res.All())
		}
		// Still under the session lock, so validators see edits in the
		// order the record committed them.
		for name := range patch {
			if label, ok := textFields[name]; ok {
				sess.Fields().Edit(name, label, textValue(*rec, name))
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, formsessions.ErrFrozen):
		jsonio.Error(w, http.StatusConflict, "El registro ya fue enviado")
		return
	case err != nil:
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	jsonio.Write(w, http.StatusOK, h.view(sess))
}

// HandleDelete handles DELETE /registro/draft.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if id := h.Cookies.FormSessionID(r); id != "" {
		if h.Sessions.Delete(id) {
			h.Log.Debug("registro: form session discarded", zap.String("session_id", id))
		}
	}
	if err := h.Cookies.Clear(w, r); err != nil {
		h.Log.Warn("registro: failed to clear session cookie", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

type warningsView struct {
	Warnings map[string]string `json:"warnings"`
	Pending  []string          `json:"pending"`
}

// ServeWarnings handles GET /registro/warnings.
func (h *Handler) ServeWarnings(w http.ResponseWriter, r *http.Request) {
	sess := h.current(w, r)
	pending := sess.Fields().Pending()
	if pending == nil {
		pending = []string{}
	}
	jsonio.Write(w, http.StatusOK, warningsView{
		Warnings: sess.Fields().Warnings(),
		Pending:  pending,
	})
}
