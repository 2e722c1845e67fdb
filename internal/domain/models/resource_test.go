package models_test

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/registro/internal/domain/models"
)

func TestNewResourceRecord_Defaults(t *testing.T) {
	r := models.NewResourceRecord()
	if r.NumColaboradores != models.CollabOne {
		t.Errorf("NumColaboradores = %q, want %q", r.NumColaboradores, models.CollabOne)
	}
	if r.Rol1 != "Autor" {
		t.Errorf("Rol1 = %q, want %q", r.Rol1, "Autor")
	}
	if r.Planteles == nil || len(r.Planteles) != 0 {
		t.Errorf("Planteles = %v, want empty non-nil slice", r.Planteles)
	}
}

func TestCollaborators(t *testing.T) {
	r := models.NewResourceRecord()
	r.Nombre1 = "Ana López"
	r.Rol2 = "Editor"
	r.Nombre2 = "Luis Pérez"

	if got := r.Collaborators(); len(got) != 1 {
		t.Fatalf("one collaborator mode returned %d entries", len(got))
	}
	if got := r.Responsibility("; "); got != "Autor: Ana López" {
		t.Errorf("Responsibility = %q", got)
	}

	r.NumColaboradores = models.CollabTwo
	if got := r.Collaborators(); len(got) != 2 {
		t.Fatalf("two collaborator mode returned %d entries", len(got))
	}
	if got := r.Responsibility("; "); got != "Autor: Ana López; Editor: Luis Pérez" {
		t.Errorf("Responsibility = %q", got)
	}
}

func TestValidateCollaborators(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.ResourceRecord)
		wantErr bool
	}{
		{"single complete", func(r *models.ResourceRecord) { r.Nombre1 = "Ana" }, false},
		{"single missing name", func(r *models.ResourceRecord) {}, true},
		{"two complete", func(r *models.ResourceRecord) {
			r.NumColaboradores = "2"
			r.Nombre1, r.Rol2, r.Nombre2 = "Ana", "Editor", "Luis"
		}, false},
		{"two missing second role", func(r *models.ResourceRecord) {
			r.NumColaboradores = "2"
			r.Nombre1, r.Nombre2 = "Ana", "Luis"
		}, true},
		{"bad count", func(r *models.ResourceRecord) {
			r.NumColaboradores = "3"
			r.Nombre1 = "Ana"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.NewResourceRecord()
			tt.mutate(&r)
			err := r.ValidateCollaborators()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCollaborators() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanProceed_ResourceStep(t *testing.T) {
	r := models.NewResourceRecord()
	r.Titulo = "Fracciones en la vida diaria"
	r.TipoRecurso = "video"
	r.Descripcion = "Video didáctico" // 15 characters

	if !r.CanProceed(1) {
		t.Error("CanProceed(1) = false, want true")
	}

	r.Descripcion = "Corto"
	if r.CanProceed(1) {
		t.Error("CanProceed(1) with short description = true, want false")
	}
}

func TestCanProceed_AllSteps(t *testing.T) {
	r := models.NewResourceRecord()
	for step := 0; step < len(models.StepTitles); step++ {
		if r.CanProceed(step) {
			t.Errorf("empty record CanProceed(%d) = true", step)
		}
	}

	r.Zona = "Zona 01"
	r.Planteles = []string{"1 - Profr. Marcial Ordóñez Ibáñez"}
	r.Titulo = "Fracciones en la vida diaria"
	r.TipoRecurso = "video"
	r.Descripcion = "Video con ejemplos de fracciones"
	r.Nombre1 = "Ana López"
	r.TipoRecursoEducativo = "Herramienta"
	r.Categoria = "Ambos"
	r.Objetivo = "Comprender fracciones equivalentes"
	r.Semestre = "Primero"
	r.Asignatura = "Pensamiento matemático I"
	r.Tema = "Fracciones"

	if !r.Complete() {
		for step := range models.StepTitles {
			t.Logf("step %d: %v", step, r.CanProceed(step))
		}
		t.Fatal("Complete() = false for a fully answered record")
	}

	r.NumColaboradores = models.CollabTwo
	if r.CanProceed(2) {
		t.Error("two collaborators without second entry should not proceed")
	}
	r.Rol2, r.Nombre2 = "Editor", "Luis Pérez"
	if !r.CanProceed(2) {
		t.Error("two complete collaborators should proceed")
	}

	if r.CanProceed(5) || r.CanProceed(-1) {
		t.Error("out-of-range steps must not proceed")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	r := models.NewResourceRecord()
	r.Planteles = []string{"a"}
	c := r.Clone()
	c.Planteles[0] = "b"
	if r.Planteles[0] != "a" {
		t.Error("Clone shares the Planteles backing array")
	}
}

func TestSheetRow_RoundTrip(t *testing.T) {
	r := models.NewResourceRecord()
	r.Titulo = "Fracciones en la vida diaria"
	r.Descripcion = "Video con ejemplos"
	r.Categoria = "Recurso para estudiante"
	r.Nombre1 = "Ana"
	meta := models.GeneratedMetadata{
		Keywords: [3]string{"fracciones", "números", "proporción"},
		Header:   "Fracciones cotidianas",
	}

	raw, err := json.Marshal(models.NewSheetRow(r, meta))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back models.SheetRow
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Titulo != r.Titulo || back.Descripcion != r.Descripcion || back.Categoria != r.Categoria {
		t.Errorf("record fields not recovered: %+v", back)
	}
	got := [3]string{back.Keyword1, back.Keyword2, back.Keyword3}
	if got != meta.Keywords {
		t.Errorf("keywords = %v, want %v", got, meta.Keywords)
	}
	if back.Responsabilidad != "Autor: Ana" {
		t.Errorf("responsabilidad = %q", back.Responsabilidad)
	}
	if len(back.Values())+1 != len(models.SheetColumns) {
		t.Errorf("Values() has %d cells, columns expect %d", len(back.Values()), len(models.SheetColumns)-1)
	}
}

func TestSubmissionKind_Status(t *testing.T) {
	if models.SubmissionOK.Status() != models.StatusSuccess {
		t.Error("ok should map to success")
	}
	for _, k := range []models.SubmissionKind{models.SubmissionRejected, models.SubmissionRateLimited, models.SubmissionUnavailable} {
		if k.Status() != models.StatusError {
			t.Errorf("%s should map to error", k)
		}
	}
}

func TestCanProceed_StepTwoNeedsRoles(t *testing.T) {
	r := models.NewResourceRecord()
	r.Nombre1 = "Ana López"
	if !r.CanProceed(2) {
		t.Fatal("default role with a name should proceed")
	}

	r.Rol1 = ""
	if r.CanProceed(2) {
		t.Error("blank role for the only collaborator should not proceed")
	}
	r.Rol1 = "   "
	if r.CanProceed(2) {
		t.Error("whitespace role should not proceed")
	}

	r.Rol1 = "Autor"
	r.NumColaboradores = models.CollabTwo
	r.Nombre2 = "Luis Pérez"
	if r.CanProceed(2) {
		t.Error("second collaborator without role should not proceed")
	}
}
