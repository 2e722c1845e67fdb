// internal/app/features/metadata/handler.go
package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/registro/internal/app/client/metagen"
	"github.com/dalemusser/registro/internal/app/system/aimodel"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/limits"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Handler serves POST /api/metadata.
type Handler struct {
	Model aimodel.Model
	Log   *zap.Logger
}

// NewHandler constructs a metadata Handler. model may be nil.
func NewHandler(model aimodel.Model, logger *zap.Logger) *Handler {
	return &Handler{Model: model, Log: logger}
}

type request struct {
	Data metagen.RequestData `json:"data"`
}

// Response is the generated keyword list and header phrase.
type Response struct {
	Keywords []string `json:"keywords"`
	Header   string   `json:"header"`
}

func int64Ptr(v int64) *int64 { return &v }

// Schema is the structured-output contract sent to the model.
var Schema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"keywords": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Three single keywords",
			MinItems:    int64Ptr(3),
			MaxItems:    int64Ptr(3),
		},
		"header": {
			Type:        genai.TypeString,
			Description: "A short header phrase",
		},
	},
	Required: []string{"keywords", "header"},
}

// Prompt builds the metadata prompt from the resource fields.
func Prompt(d metagen.RequestData) string {
	return fmt.Sprintf(`Act as an educational data specialist for a High School (Bachillerato) system in Sinaloa, Mexico.
Based on the following resource information, generate:
1. Three specific single-word keywords (Palabras clave) related to the content.
2. A short, professional header phrase (Encabezado) (max 5 words) describing the resource topic.

Resource Info:
Title: %s
Description: %s
Subject: %s
Theme: %s
`, d.Titulo, d.Descripcion, d.Asignatura, d.Tema)
}

// Serve handles POST /api/metadata.
//
//	{ "data": { "titulo": ..., "descripcion": ..., "asignatura": ..., "tema": ... } }
//	-> { "keywords": ["a","b","c"], "header": "..." }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := jsonio.Decode(w, r, limits.MaxAPIBody, &req); err != nil {
		jsonio.Error(w, jsonio.DecodeStatus(err), "Invalid request body")
		return
	}

	if h.Model == nil {
		h.Log.Warn("metadata: no generative model configured")
		jsonio.Error(w, http.StatusInternalServerError, "Metadata failed")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Metadata(), h.Log, "metadata generation")
	defer cancel()

	raw, err := h.Model.GenerateJSON(ctx, Prompt(req.Data), Schema)
	if err != nil {
		h.Log.Error("metadata error", zap.Error(err), zap.String("titulo", req.Data.Titulo))
		jsonio.Error(w, http.StatusInternalServerError, "Metadata failed")
		return
	}

	var out Response
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		h.Log.Error("metadata error: model returned invalid JSON", zap.Error(err))
		jsonio.Error(w, http.StatusInternalServerError, "Metadata failed")
		return
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}

	jsonio.Write(w, http.StatusOK, out)
}
