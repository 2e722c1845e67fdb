// internal/app/features/saveresource/handler.go
package saveresource

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/registro/internal/app/system/auditlog"
	"github.com/dalemusser/registro/internal/app/system/htmlsanitize"
	"github.com/dalemusser/registro/internal/app/system/inputval"
	"github.com/dalemusser/registro/internal/app/system/jsonio"
	"github.com/dalemusser/registro/internal/app/system/limits"
	"github.com/dalemusser/registro/internal/app/system/sheets"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// SuccessMessage is returned with {"success": true}.
const SuccessMessage = "Recurso registrado correctamente"

// Appender stores one row in the central spreadsheet.
type Appender interface {
	Append(ctx context.Context, row models.SheetRow) error
}

// Handler serves POST /api/save-resource.
type Handler struct {
	Sheet Appender
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a save-resource Handler. audit may be nil.
func NewHandler(sheet Appender, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Sheet: sheet, Audit: audit, Log: logger}
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Serve handles POST /api/save-resource.
//
// 413 when the body exceeds the cap, 400 when a required field is missing or
// any value starts with "=", 500 when the spreadsheet refuses the row.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var row models.SheetRow
	if err := jsonio.Decode(w, r, limits.MaxAPIBody, &row); err != nil {
		status := jsonio.DecodeStatus(err)
		msg := "Cuerpo de la solicitud inválido"
		if status == http.StatusRequestEntityTooLarge {
			msg = "La solicitud excede el tamaño permitido"
		}
		h.record(r, row, models.SubmissionRejected, err.Error())
		jsonio.Error(w, status, msg)
		return
	}

	row.Each(func(_ string, v *string) {
		*v = htmlsanitize.PlainText(*v)
	})

	if res := inputval.Validate(row); res.HasErrors() {
		h.record(r, row, models.SubmissionRejected, res.All())
		jsonio.Error(w, http.StatusBadRequest, res.All())
		return
	}

	var formulaField string
	row.Each(func(name string, v *string) {
		if formulaField == "" && inputval.StartsWithEquals(*v) {
			formulaField = name
		}
	})
	if formulaField != "" {
		h.Log.Warn("save-resource: formula value refused", zap.String("field", formulaField))
		h.record(r, row, models.SubmissionRejected, "formula in "+formulaField)
		jsonio.Error(w, http.StatusBadRequest, "El campo "+formulaField+" no puede comenzar con '='")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "sheet append")
	defer cancel()

	if err := h.Sheet.Append(ctx, row); err != nil {
		h.Log.Error("save-resource: sheet append failed", zap.Error(err), zap.String("titulo", row.Titulo))
		h.record(r, row, models.SubmissionUnavailable, err.Error())
		msg := "No se pudo guardar el recurso"
		if errors.Is(err, sheets.ErrNotConfigured) {
			msg = "El registro central no está configurado"
		}
		jsonio.Error(w, http.StatusInternalServerError, msg)
		return
	}

	h.record(r, row, models.SubmissionOK, "")
	jsonio.Write(w, http.StatusOK, successResponse{Success: true, Message: SuccessMessage})
}

func (h *Handler) record(r *http.Request, row models.SheetRow, kind models.SubmissionKind, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeouts.Ledger())
	defer cancel()
	h.Audit.Submission(ctx, r, row, kind, reason)
}
