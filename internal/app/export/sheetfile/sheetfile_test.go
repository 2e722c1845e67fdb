package sheetfile_test

import (
	"bytes"
	"testing"

	"github.com/dalemusser/registro/internal/app/export/sheetfile"
	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	r := models.NewResourceRecord()
	r.Titulo = "=Fracciones"
	r.TipoRecurso = "video"
	r.Descripcion = "Video didáctico"
	r.Nombre1 = "Ana"
	r.Categoria = "Video"
	r.Objetivo = "Relacionar fracciones"
	r.Semestre = "1"
	r.Asignatura = "Matemáticas I"
	meta := models.GeneratedMetadata{Keywords: [3]string{"Fracciones", "Didáctica", "Digital"}, Header: "Recurso: Fracciones"}

	doc, err := sheetfile.Render(r, meta)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Filename != "Registro_Recursos.xlsx" {
		t.Errorf("Filename = %q", doc.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetfile.SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if len(rows[0]) != 14 || rows[0][0] != "Número" || rows[0][13] != "Asignatura" {
		t.Errorf("header row = %v", rows[0])
	}

	want := []string{"1", "=Fracciones", "video", "Video didáctico", "Fracciones", "Didáctica", "Digital",
		"Autor: Ana", "", "Video", "Relacionar fracciones", "Recurso: Fracciones", "1", "Matemáticas I"}
	for i, w := range want {
		if i >= len(rows[1]) {
			if w != "" {
				t.Errorf("column %d missing, want %q", i, w)
			}
			continue
		}
		if rows[1][i] != w {
			t.Errorf("column %d = %q, want %q", i, rows[1][i], w)
		}
	}

	formula, err := f.GetCellFormula(sheetfile.SheetName, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if formula != "" {
		t.Errorf("title stored as formula %q", formula)
	}
}
