// internal/app/features/registro/steps.go
package registro

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeStep handles GET /registro/steps/{step}.
func (h *Handler) ServeStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil || step < 0 || step >= len(models.StepTitles) {
		jsonio.Error(w, http.StatusNotFound, "Paso inexistente")
		return
	}
	rec := h.current(w, r).Record()
	jsonio.Write(w, http.StatusOK, stepView{
		Step:       step,
		Title:      models.StepTitles[step],
		CanProceed: rec.CanProceed(step),
	})
}
