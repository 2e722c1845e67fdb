// internal/app/features/validate/handler.go
package validate

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/system/aimodel"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/limits"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// okToken is what the model answers when the text needs no warning.
const okToken = "OK"

// Handler serves POST /api/validate.
type Handler struct {
	Model aimodel.Model
	Log   *zap.Logger
}

// NewHandler constructs a validate Handler. model may be nil, in which case
// every request fails and clients fall back to their local heuristics.
func NewHandler(model aimodel.Model, logger *zap.Logger) *Handler {
	return &Handler{Model: model, Log: logger}
}

type request struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

type response struct {
	Result *string `json:"result"`
}

// Prompt builds the text-quality prompt for one field value.
func Prompt(text, label string) string {
	return fmt.Sprintf(`Analyze the following text from a teacher's form input (Context: %s).
If it has significant spelling errors or looks like gibberish, return a short, polite warning message in Spanish starting with "¡Ojo!".
If it uses ONLY capital letters, return "No uses solo mayúsculas".
If it looks fine, return "OK".

Text: "%s"`, label, text)
}

// Serve handles POST /api/validate.
//
//	{ "text": "...", "context": "Título" } -> { "result": null | "warning" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := jsonio.Decode(w, r, limits.MaxAPIBody, &req); err != nil {
		jsonio.Error(w, jsonio.DecodeStatus(err), "Invalid request body")
		return
	}

	if h.Model == nil {
		h.Log.Warn("validate: no generative model configured")
		jsonio.Error(w, http.StatusInternalServerError, "Validation failed")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Validate(), h.Log, "text validation")
	defer cancel()

	answer, err := h.Model.GenerateText(ctx, Prompt(req.Text, req.Context))
	if err != nil {
		h.Log.Error("validation error", zap.Error(err), zap.String("context", req.Context))
		jsonio.Error(w, http.StatusInternalServerError, "Validation failed")
		return
	}

	answer = strings.TrimSpace(answer)
	var resp response
	if answer != okToken {
		resp.Result = &answer
	}
	jsonio.Write(w, http.StatusOK, resp)
}
