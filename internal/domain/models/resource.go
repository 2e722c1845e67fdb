// internal/domain/models/resource.go
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Collaborator counts accepted by the form.
const (
	CollabOne = "1"
	CollabTwo = "2"
)

// DefaultRole is the role of the first collaborator when working alone.
const DefaultRole = "Autor"

// ResourceRecord is the full set of form answers for one educational resource.
// JSON names follow the form field names used by the browser client.
type ResourceRecord struct {
	// Ubicación
	Zona      string   `json:"zona"`
	Planteles []string `json:"planteles"`

	// El Recurso
	Titulo      string `json:"titulo" validate:"max=200" label:"Título"`
	TipoRecurso string `json:"tipoRecurso" validate:"max=500" label:"Link o tipo de recurso"` // link or resource type (video, pdf, app...)
	Descripcion string `json:"descripcion" validate:"max=2000" label:"Descripción"`

	// Autoría
	NumColaboradores string `json:"numColaboradores"` // "1" or "2"
	Rol1             string `json:"rol1"`
	Nombre1          string `json:"nombre1" validate:"max=120" label:"Nombre 1"`
	Rol2             string `json:"rol2"`
	Nombre2          string `json:"nombre2" validate:"max=120" label:"Nombre 2"`

	// Clasificación
	TipoRecursoEducativo string `json:"tipoRecursoEducativo"`
	Categoria            string `json:"categoria"`
	Objetivo             string `json:"objetivo" validate:"max=1000" label:"Objetivo"`

	// Contexto
	Semestre   string `json:"semestre"`
	Asignatura string `json:"asignatura"`
	Tema       string `json:"tema" validate:"max=200" label:"Tema"`
}

// NewResourceRecord returns a record with the defaults of a fresh form session.
func NewResourceRecord() ResourceRecord {
	return ResourceRecord{
		Planteles:        []string{},
		NumColaboradores: CollabOne,
		Rol1:             DefaultRole,
	}
}

// Collaborator is one entry of the "mención de responsabilidad".
type Collaborator struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// String formats the collaborator as "Role: Name".
func (c Collaborator) String() string {
	return c.Role + ": " + c.Name
}

// Collaborators returns exactly one or two entries depending on NumColaboradores.
// Anything other than "2" is treated as a single collaborator.
func (r ResourceRecord) Collaborators() []Collaborator {
	first := Collaborator{Role: r.Rol1, Name: r.Nombre1}
	if r.NumColaboradores != CollabTwo {
		return []Collaborator{first}
	}
	return []Collaborator{first, {Role: r.Rol2, Name: r.Nombre2}}
}

// Responsibility joins the collaborators with sep, e.g. "Autor: Ana; Editor: Luis".
func (r ResourceRecord) Responsibility(sep string) string {
	cs := r.Collaborators()
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// ValidateCollaborators checks that every collaborator entry in use has a role and a name.
func (r ResourceRecord) ValidateCollaborators() error {
	if r.NumColaboradores != CollabOne && r.NumColaboradores != CollabTwo {
		return fmt.Errorf("numColaboradores must be %q or %q", CollabOne, CollabTwo)
	}
	for i, c := range r.Collaborators() {
		if strings.TrimSpace(c.Role) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("collaborator %d requires role and name", i+1)
		}
	}
	return nil
}

// Clone returns a deep copy so a snapshot can be handed to the export pipeline.
func (r ResourceRecord) Clone() ResourceRecord {
	out := r
	out.Planteles = append([]string(nil), r.Planteles...)
	return out
}

// StepTitles are the section titles of the form, indexed by step.
var StepTitles = []string{"Ubicación", "El Recurso", "Autoría", "Clasificación", "Contexto"}

// CanProceed reports whether the answers for the given step are complete
// enough to move on. Lengths are counted in characters, not bytes.
func (r ResourceRecord) CanProceed(step int) bool {
	switch step {
	case 0:
		return r.Zona != "" && len(r.Planteles) > 0
	case 1:
		return runeLen(r.Titulo) > 3 && r.TipoRecurso != "" && runeLen(r.Descripcion) > 10
	case 2:
		if r.ValidateCollaborators() != nil {
			return false
		}
		if r.NumColaboradores != CollabTwo {
			return runeLen(r.Nombre1) > 3
		}
		return runeLen(r.Nombre1) > 3 && runeLen(r.Nombre2) > 3
	case 3:
		return r.TipoRecursoEducativo != "" && r.Categoria != "" && runeLen(r.Objetivo) > 10
	case 4:
		return r.Semestre != "" && r.Asignatura != "" && runeLen(r.Tema) > 3
	default:
		return false
	}
}

// Complete reports whether every step can proceed.
func (r ResourceRecord) Complete() bool {
	for step := range StepTitles {
		if !r.CanProceed(step) {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
