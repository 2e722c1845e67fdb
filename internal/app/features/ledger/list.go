// internal/app/features/ledger/list.go
package ledger

import (
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/store/submissions"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/paging"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/app/system/timezones"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// listResponse is one page of ledger entries, newest first.
type listResponse struct {
	Items []models.Submission `json:"items"`
	paging.Pages
}

var kinds = map[string]models.SubmissionKind{
	string(models.SubmissionOK):          models.SubmissionOK,
	string(models.SubmissionRejected):    models.SubmissionRejected,
	string(models.SubmissionRateLimited): models.SubmissionRateLimited,
	string(models.SubmissionUnavailable): models.SubmissionUnavailable,
}

// ServeList handles GET /ledger.
//
// Query parameters:
//   - kind: ok | rejected | rate_limited | unavailable
//   - outcome: failed | succeeded
//   - start_date, end_date: YYYY-MM-DD in the configured zone, inclusive
//   - page, limit
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter submissions.QueryFilter

	if k := strings.TrimSpace(q.Get("kind")); k != "" {
		kind, ok := kinds[k]
		if !ok {
			jsonio.Error(w, http.StatusBadRequest, "unknown kind")
			return
		}
		filter.Kind = kind
	}

	switch strings.TrimSpace(q.Get("outcome")) {
	case "":
	case "failed":
		f := false
		filter.Success = &f
	case "succeeded":
		s := true
		filter.Success = &s
	default:
		jsonio.Error(w, http.StatusBadRequest, "outcome must be failed or succeeded")
		return
	}

	filter.StartTime, filter.EndTime = timezones.DayRange(
		strings.TrimSpace(q.Get("start_date")),
		strings.TrimSpace(q.Get("end_date")),
		h.Loc,
	)

	page := paging.ParsePage(r)
	size := paging.ParseLimit(r)
	filter.Limit = int64(size)
	filter.Offset = paging.Offset(page, size)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ledger(), h.Log, "ledger list")
	defer cancel()

	items, err := h.Store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query submissions", zap.Error(err))
		jsonio.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	total, err := h.Store.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count submissions", zap.Error(err))
		jsonio.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	if items == nil {
		items = []models.Submission{}
	}
	jsonio.Write(w, http.StatusOK, listResponse{
		Items: items,
		Pages: paging.Compute(page, size, total),
	})
}
