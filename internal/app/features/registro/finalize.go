// internal/app/features/registro/finalize.go
package registro

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/dalemusser/registro/internal/app/client/apiclient"
	"github.com/dalemusser/registro/internal/app/export/sheetfile"
	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Response headers carrying the submission outcome next to the document.
const (
	HeaderStatus = "X-Submission-Status"
	HeaderResult = "X-Submission-Result"
)

type incompleteView struct {
	Error string `json:"error"`
	Step  int    `json:"step"`
	Title string `json:"title"`
}

// HandleFinalize handles POST /registro/finalize.
//
// It freezes the record, runs metadata, submission and export, and answers
// with the receipt as an attachment whatever the submission outcome was.
// Only a failed document turns into a 500, carrying the panel as JSON.
func (h *Handler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existing(w, r)
	if !ok {
		return
	}

	if rec := sess.Record(); !rec.Complete() {
		for step, title := range models.StepTitles {
			if !rec.CanProceed(step) {
				jsonio.Write(w, http.StatusBadRequest, incompleteView{
					Error: "Faltan datos en el paso " + strconv.Itoa(step+1),
					Step:  step,
					Title: title,
				})
				return
			}
		}
	}

	rec, err := sess.Freeze()
	if errors.Is(err, formsessions.ErrFrozen) {
		o, done := sess.Outcome()
		jsonio.Write(w, http.StatusConflict, h.panel(o, done))
		return
	}

	// The pipeline's own timeouts bound it; a client that hangs up must
	// not leave the session half finalized.
	ctx := apiclient.WithCallerIP(context.WithoutCancel(r.Context()), ratelimit.ClientIP(r))
	result := h.Pipeline.Run(ctx, rec)
	outcome := result.Outcome()
	sess.SetOutcome(outcome)

	h.Log.Debug("registro: finalized",
		zap.String("session_id", sess.ID),
		zap.String("status", string(outcome.Status)),
		zap.String("result", string(outcome.Kind)),
		zap.Bool("document", outcome.DocumentReady()))

	if !outcome.DocumentReady() {
		jsonio.Write(w, http.StatusInternalServerError, h.panel(outcome, true))
		return
	}
	writeDocument(w, *outcome.Document, outcome)
}

// ServeOutcome handles GET /registro/outcome.
func (h *Handler) ServeOutcome(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existing(w, r)
	if !ok {
		return
	}
	o, done := sess.Outcome()
	jsonio.Write(w, http.StatusOK, h.panel(o, done))
}

// ServeReceipt handles GET /registro/receipt, downloading the receipt again.
func (h *Handler) ServeReceipt(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existing(w, r)
	if !ok {
		return
	}
	o, done := sess.Outcome()
	if !done || !o.DocumentReady() {
		jsonio.Error(w, http.StatusNotFound, "No hay documento disponible")
		return
	}
	writeDocument(w, *o.Document, o)
}

// ServeSpreadsheet handles GET /registro/spreadsheet.
func (h *Handler) ServeSpreadsheet(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.existing(w, r)
	if !ok {
		return
	}
	o, done := sess.Outcome()
	if !done {
		jsonio.Error(w, http.StatusConflict, "El registro aún no ha sido enviado")
		return
	}
	doc, err := sheetfile.Render(sess.Record(), o.Metadata)
	if err != nil {
		h.Log.Error("registro: spreadsheet export failed", zap.Error(err))
		jsonio.Error(w, http.StatusInternalServerError, "No se pudo generar la hoja de cálculo")
		return
	}
	writeDocument(w, doc, o)
}

func writeDocument(w http.ResponseWriter, doc models.Document, o models.ExportOutcome) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set(HeaderStatus, string(o.Status))
	w.Header().Set(HeaderResult, string(o.Kind))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
