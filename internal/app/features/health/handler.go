package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const notConfigured = "not_configured"

// SheetStatus reports whether the spreadsheet webhook is wired.
type SheetStatus interface {
	Configured() bool
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client // nil when the submission ledger is disabled
	Model  string        // generative model name, "" when none
	Sheets SheetStatus
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, model string, sheets SheetStatus, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Model:  model,
		Sheets: sheets,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	AIModel  string `json:"ai_model"`
	Sheets   string `json:"sheets"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "ai_model":"gemini:gemini-2.5-flash", "sheets":"configured" }
//
// The model and webhook entries are informational. Only a configured but
// unreachable database turns the answer into a 503:
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: notConfigured,
		AIModel:  notConfigured,
		Sheets:   notConfigured,
	}
	if h.Model != "" {
		resp.AIModel = h.Model
	}
	if h.Sheets != nil && h.Sheets.Configured() {
		resp.Sheets = "configured"
	}

	if h.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
