// internal/app/features/registro/panel.go
package registro

import (
	"fmt"

	"github.com/dalemusser/registro/internal/domain/models"
)

type documentView struct {
	Ready    bool   `json:"ready"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// panelView is the terminal screen shown after finalize.
type panelView struct {
	Status   models.SubmissionStatus   `json:"status"`
	Result   models.SubmissionKind     `json:"result,omitempty"`
	Title    string                    `json:"title"`
	Message  string                    `json:"message"`
	Contact  *Contact                  `json:"contact,omitempty"`
	Document *documentView             `json:"document,omitempty"`
	Metadata *models.GeneratedMetadata `json:"metadata,omitempty"`
}

// Panel titles and messages.
const (
	TitleSuccess = "¡Excelente Trabajo!"
	TitleError   = "No pudimos completar el registro"
	TitleIdle    = "Registro en curso"

	MessageSuccess = "Tu recurso ha sido registrado correctamente."
	MessageIdle    = "Completa los cinco pasos para registrar tu recurso."
)

func (c Contact) String() string {
	switch {
	case c.Name != "" && c.Email != "":
		return fmt.Sprintf("%s (%s)", c.Name, c.Email)
	case c.Email != "":
		return c.Email
	default:
		return c.Name
	}
}

func errorMessage(kind models.SubmissionKind, c Contact) string {
	var lead string
	switch kind {
	case models.SubmissionRejected:
		lead = "El registro central no aceptó uno de los valores enviados (por ejemplo, un campo que empieza con \"=\")."
	case models.SubmissionRateLimited:
		lead = "Se alcanzó el límite de envíos al registro central. Intenta de nuevo en unos minutos."
	default:
		lead = "No pudimos contactar el registro central."
	}
	return fmt.Sprintf("%s Comunícate con %s y comparte el documento descargado, que sirve como respaldo de tu registro.", lead, c)
}

// panel builds the terminal view for a session.
func (h *Handler) panel(o models.ExportOutcome, finalized bool) panelView {
	if !finalized {
		return panelView{Status: models.StatusIdle, Title: TitleIdle, Message: MessageIdle}
	}

	meta := o.Metadata
	p := panelView{
		Status:   o.Status,
		Result:   o.Kind,
		Metadata: &meta,
		Document: &documentView{Ready: o.DocumentReady(), Error: o.DocumentErr},
	}
	if o.Document != nil {
		p.Document.Filename = o.Document.Filename
	}

	if o.Status == models.StatusSuccess {
		p.Title = TitleSuccess
		p.Message = MessageSuccess
		return p
	}

	contact := h.Contact
	p.Title = TitleError
	p.Message = errorMessage(o.Kind, contact)
	p.Contact = &contact
	return p
}
