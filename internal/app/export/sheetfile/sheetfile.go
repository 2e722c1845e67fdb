// Package sheetfile renders a finalized record as a one-row spreadsheet in
// the central store's column layout.
package sheetfile

import (
	"fmt"

	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

// Fixed names of the generated workbook.
const (
	Filename    = "Registro_Recursos.xlsx"
	SheetName   = "Recursos"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Render returns a workbook with the header row and one value row built
// from r and meta. Cells are written as strings so a value such as "=1+1"
// is never evaluated as a formula.
func Render(r models.ResourceRecord, meta models.GeneratedMetadata) (models.Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return models.Document{}, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range models.SheetColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(SheetName, cell, h); err != nil {
			return models.Document{}, fmt.Errorf("write header %s: %w", cell, err)
		}
	}

	if err := f.SetCellInt(SheetName, "A2", 1); err != nil {
		return models.Document{}, fmt.Errorf("write row number: %w", err)
	}
	for i, v := range models.NewSheetRow(r, meta).Values() {
		cell, _ := excelize.CoordinatesToCellName(i+2, 2)
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return models.Document{}, fmt.Errorf("write value %s: %w", cell, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return models.Document{}, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(models.SheetColumns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return models.Document{}, fmt.Errorf("apply header style: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return models.Document{}, fmt.Errorf("write workbook: %w", err)
	}
	return models.Document{
		Filename:    Filename,
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}
