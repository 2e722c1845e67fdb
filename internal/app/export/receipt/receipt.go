// Package receipt renders the registration receipt as a PDF.
//
// The receipt is the user's offline proof of registration: it depends only
// on the record, never on remote state.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/go-pdf/fpdf"
)

// ContentType of every rendered receipt.
const ContentType = "application/pdf"

// Fixed texts printed on every receipt.
const (
	HeaderText = "Dirección Académica"
	FooterText = "Generado automáticamente por el Sistema de Registro de Recursos."
)

type rgb struct{ r, g, b int }

var (
	green     = rgb{0x00, 0x68, 0x47}
	burgundy  = rgb{0x80, 0x24, 0x34}
	slate     = rgb{0x54, 0x56, 0x5A}
	lightMint = rgb{0xF0, 0xFD, 0xF4}
	dotted    = rgb{0xAA, 0xAA, 0xAA}
	muted     = rgb{0x88, 0x88, 0x88}
)

const (
	font     = "Times"
	bodySize = 10
	lineH    = 5.0
	cellPad  = 2.0
	labelPct = 0.30
)

// Row is one label/value pair of the receipt table.
type Row struct {
	Label string
	Value string
}

// Rows returns the twelve label/value pairs printed for r.
func Rows(r models.ResourceRecord) []Row {
	return []Row{
		{"Zona Educativa", r.Zona},
		{"Plantel(es)", strings.Join(r.Planteles, ", ")},
		{"Título del Recurso", r.Titulo},
		{"Link / Tipo", r.TipoRecurso},
		{"Descripción", r.Descripcion},
		{"Colaboradores", r.Responsibility("\n")},
		{"Tipo de Recurso Educativo", r.TipoRecursoEducativo},
		{"Categoría", r.Categoria},
		{"Objetivo", r.Objetivo},
		{"Semestre", r.Semestre},
		{"Asignatura", r.Asignatura},
		{"Tema(s) Central(es)", r.Tema},
	}
}

// Exporter renders receipts. The zero value is ready to use.
type Exporter struct {
	// Now stamps the document metadata. Nil means time.Now.
	Now func() time.Time
}

// Export renders r and names the file after its title.
func (e Exporter) Export(r models.ResourceRecord) (models.Document, error) {
	data, err := e.Render(r)
	if err != nil {
		return models.Document{}, err
	}
	return models.Document{
		Filename:    Filename(r.Titulo),
		ContentType: ContentType,
		Data:        data,
	}, nil
}

// Render returns the PDF bytes for r.
func (e Exporter) Render(r models.ResourceRecord) ([]byte, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now()

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle(r.Titulo, true)
	pdf.SetSubject("Registro de Recursos Didácticos", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		left, _, right, _ := pdf.GetMargins()
		pageW, _ := pdf.GetPageSize()
		pdf.SetFont(font, "", bodySize)
		setText(pdf, slate)
		pdf.CellFormat(0, lineH, tr(HeaderText), "", 1, "R", false, 0, "")
		setDraw(pdf, burgundy)
		pdf.SetLineWidth(0.6)
		y := pdf.GetY() + 0.5
		pdf.Line(left, y, pageW-right, y)
		pdf.Ln(6)
	})

	pdf.AddPage()
	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	tableW := pageW - left - right
	labelW := tableW * labelPct
	valueW := tableW - labelW

	// title banner
	pdf.Ln(6)
	pdf.SetFont(font, "B", 14)
	setText(pdf, rgb{})
	pdf.MultiCell(0, 7, tr(r.Titulo), "", "C", false)
	pdf.Ln(6)

	setDraw(pdf, green)
	pdf.SetLineWidth(0.2)
	for _, row := range Rows(r) {
		label, value := tr(row.Label), tr(row.Value)

		pdf.SetFont(font, "B", bodySize)
		labelLines := len(pdf.SplitLines([]byte(label), labelW-2*cellPad))
		pdf.SetFont(font, "", bodySize)
		valueLines := len(pdf.SplitLines([]byte(value), valueW-2*cellPad))
		n := max(1, labelLines, valueLines)
		h := float64(n)*lineH + 2*cellPad

		if pdf.GetY()+h > pageH-bottom {
			pdf.AddPage()
		}
		x, y := left, pdf.GetY()

		setFill(pdf, lightMint)
		pdf.Rect(x, y, labelW, h, "FD")
		pdf.Rect(x+labelW, y, valueW, h, "D")

		pdf.SetXY(x+cellPad, y+cellPad)
		pdf.SetFont(font, "B", bodySize)
		setText(pdf, green)
		pdf.MultiCell(labelW-2*cellPad, lineH, label, "", "L", false)

		pdf.SetXY(x+labelW+cellPad, y+cellPad)
		pdf.SetFont(font, "", bodySize)
		setText(pdf, rgb{})
		pdf.MultiCell(valueW-2*cellPad, lineH, value, "", "L", false)

		pdf.SetXY(x, y+h)
	}

	// dotted separator under the table, then the footer disclaimer
	setDraw(pdf, dotted)
	pdf.SetDashPattern([]float64{0.5, 0.8}, 0)
	pdf.Line(left, pdf.GetY()+1, left+tableW, pdf.GetY()+1)
	pdf.SetDashPattern([]float64{}, 0)

	pdf.Ln(12)
	pdf.SetFont(font, "I", 8)
	setText(pdf, muted)
	pdf.MultiCell(0, 4, tr(FooterText), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
