// internal/app/features/registro/routes.go
package registro

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /registro.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/draft", h.ServeDraft)
	r.Patch("/draft", h.HandlePatch)
	r.Delete("/draft", h.HandleDelete)
	r.Get("/warnings", h.ServeWarnings)
	r.Get("/steps/{step}", h.ServeStep)

	r.Post("/finalize", h.HandleFinalize)
	r.Get("/outcome", h.ServeOutcome)
	r.Get("/receipt", h.ServeReceipt)
	r.Get("/spreadsheet", h.ServeSpreadsheet)

	return r
}
