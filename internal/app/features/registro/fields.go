// internal/app/features/registro/fields.go
package registro

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dalemusser/registro/internal/domain/models"
)

// textFields are checked for spelling and capitalization as the user types.
// Values are the labels the checker sees as context.
var textFields = map[string]string{
	"titulo":      "Título del recurso",
	"descripcion": "Descripción",
	"nombre1":     "Nombre del colaborador 1",
	"nombre2":     "Nombre del colaborador 2",
	"objetivo":    "Descripción del uso educativo (objetivo)",
	"tema":        "Tema(s) central(es)",
}

type setter func(r *models.ResourceRecord, raw json.RawMessage) error

func str(dst func(*models.ResourceRecord) *string) setter {
	return func(r *models.ResourceRecord, raw json.RawMessage) error {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("must be a string")
		}
		*dst(r) = v
		return nil
	}
}

// fieldOrder fixes the order patches are applied in: a zone is set before
// its sites, a semester before its subject.
var fieldOrder = []string{
	"zona", "planteles",
	"titulo", "tipoRecurso", "descripcion",
	"numColaboradores", "rol1", "nombre1", "rol2", "nombre2",
	"tipoRecursoEducativo", "categoria", "objetivo",
	"semestre", "asignatura", "tema",
}

var setters = map[string]setter{
	"zona": func(r *models.ResourceRecord, raw json.RawMessage) error {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("must be a string")
		}
		if v != r.Zona {
			r.Planteles = []string{}
		}
		r.Zona = v
		return nil
	},
	"planteles": func(r *models.ResourceRecord, raw json.RawMessage) error {
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("must be a list of strings")
		}
		out := make([]string, 0, len(v))
		seen := make(map[string]bool, len(v))
		for _, p := range v {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
		r.Planteles = out
		return nil
	},
	"titulo":      str(func(r *models.ResourceRecord) *string { return &r.Titulo }),
	"tipoRecurso": str(func(r *models.ResourceRecord) *string { return &r.TipoRecurso }),
	"descripcion": str(func(r *models.ResourceRecord) *string { return &r.Descripcion }),
	"numColaboradores": func(r *models.ResourceRecord, raw json.RawMessage) error {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			// The browser may send the count as a number.
			var n int
			if json.Unmarshal(raw, &n) != nil {
				return fmt.Errorf("must be \"1\" or \"2\"")
			}
			v = fmt.Sprint(n)
		}
		if v != models.CollabOne && v != models.CollabTwo {
			return fmt.Errorf("must be \"1\" or \"2\"")
		}
		r.NumColaboradores = v
		return nil
	},
	"rol1":                 str(func(r *models.ResourceRecord) *string { return &r.Rol1 }),
	"nombre1":              str(func(r *models.ResourceRecord) *string { return &r.Nombre1 }),
	"rol2":                 str(func(r *models.ResourceRecord) *string { return &r.Rol2 }),
	"nombre2":              str(func(r *models.ResourceRecord) *string { return &r.Nombre2 }),
	"tipoRecursoEducativo": str(func(r *models.ResourceRecord) *string { return &r.TipoRecursoEducativo }),
	"categoria":            str(func(r *models.ResourceRecord) *string { return &r.Categoria }),
	"objetivo":             str(func(r *models.ResourceRecord) *string { return &r.Objetivo }),
	"semestre": func(r *models.ResourceRecord, raw json.RawMessage) error {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("must be a string")
		}
		if v != r.Semestre {
			r.Asignatura = ""
		}
		r.Semestre = v
		return nil
	},
	"asignatura": str(func(r *models.ResourceRecord) *string { return &r.Asignatura }),
	"tema":       str(func(r *models.ResourceRecord) *string { return &r.Tema }),
}

// applyPatch sets every field named in patch. Unknown names fail the whole
// patch.
func applyPatch(r *models.ResourceRecord, patch map[string]json.RawMessage) error {
	for name := range patch {
		if _, ok := setters[name]; !ok {
			return fmt.Errorf("unknown field %q", name)
		}
	}
	for _, name := range fieldOrder {
		raw, ok := patch[name]
		if !ok {
			continue
		}
		if err := setters[name](r, raw); err != nil {
			return fmt.Errorf("%s %w", name, err)
		}
	}
	return nil
}

// textValue returns the current value of a checked text field.
func textValue(r models.ResourceRecord, name string) string {
	switch name {
	case "titulo":
		return r.Titulo
	case "descripcion":
		return r.Descripcion
	case "nombre1":
		return r.Nombre1
	case "nombre2":
		return r.Nombre2
	case "objetivo":
		return r.Objetivo
	case "tema":
		return r.Tema
	}
	return ""
}
