// internal/app/features/ledger/handler.go
package ledger

import (
	"context"
	"time"

	"github.com/dalemusser/registro/internal/app/store/submissions"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Lister reads the submission ledger.
type Lister interface {
	Query(ctx context.Context, filter submissions.QueryFilter) ([]models.Submission, error)
	CountByFilter(ctx context.Context, filter submissions.QueryFilter) (int64, error)
}

type Handler struct {
	Store Lister
	Loc   *time.Location // zone used to read start_date/end_date
	Log   *zap.Logger
}

// NewHandler constructs a ledger handler. A nil loc reads dates as UTC.
func NewHandler(store Lister, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Store: store, Loc: loc, Log: logger}
}
