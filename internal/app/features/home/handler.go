package home

import (
	"net/http"

	"go.uber.org/zap"
)

// Banner is the plain-text answer of GET /api.
const Banner = "API is running. Use /api/validate or /api/metadata."

// Handler serves the API landing banner.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api – banner                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}
