// internal/app/features/ledger/routes.go
package ledger

import (
	"github.com/dalemusser/registro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes mounts the ledger under the path where this router is mounted
// (typically "/ledger" from bootstrap). Every route needs the operator token.
func Routes(h *Handler, token string, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireBearer(token, logger))
		pr.Get("/", h.ServeList)
	})

	return r
}
