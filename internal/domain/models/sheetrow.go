// internal/domain/models/sheetrow.go
package models

// SheetRow is the flat payload accepted by the persistence endpoint and
// appended as one row of the central spreadsheet.
type SheetRow struct {
	Titulo          string `json:"titulo" validate:"required" label:"titulo"`
	Link            string `json:"link"`
	Descripcion     string `json:"descripcion" validate:"required" label:"descripcion"`
	Keyword1        string `json:"keyword1"`
	Keyword2        string `json:"keyword2"`
	Keyword3        string `json:"keyword3"`
	Responsabilidad string `json:"responsabilidad" validate:"required" label:"responsabilidad"`
	TipoEducativo   string `json:"tipoEducativo"`
	Categoria       string `json:"categoria"`
	UsoEducativo    string `json:"usoEducativo"`
	Encabezados     string `json:"encabezados"`
	Semestre        string `json:"semestre"`
	Asignatura      string `json:"asignatura"`
}

// NewSheetRow builds the persistence payload from a record and its metadata.
func NewSheetRow(r ResourceRecord, meta GeneratedMetadata) SheetRow {
	return SheetRow{
		Titulo:          r.Titulo,
		Link:            r.TipoRecurso,
		Descripcion:     r.Descripcion,
		Keyword1:        meta.Keywords[0],
		Keyword2:        meta.Keywords[1],
		Keyword3:        meta.Keywords[2],
		Responsabilidad: r.Responsibility("; "),
		TipoEducativo:   r.TipoRecursoEducativo,
		Categoria:       r.Categoria,
		UsoEducativo:    r.Objetivo,
		Encabezados:     meta.Header,
		Semestre:        r.Semestre,
		Asignatura:      r.Asignatura,
	}
}

// Values returns the row's cells in spreadsheet column order.
func (s SheetRow) Values() []string {
	return []string{
		s.Titulo, s.Link, s.Descripcion,
		s.Keyword1, s.Keyword2, s.Keyword3,
		s.Responsabilidad, s.TipoEducativo, s.Categoria,
		s.UsoEducativo, s.Encabezados, s.Semestre, s.Asignatura,
	}
}

// SheetColumns are the spreadsheet headers, including the leading row number.
var SheetColumns = []string{
	"Número", "Título del recurso", "Link o tipo de recurso", "Descripción",
	"Palabra clave (1)", "Palabra clave (2)", "Palabras clave (3)",
	"Mención de responsabilidad", "Tipo de recurso educativo", "Categoría",
	"Descripción del uso educativo (objetivo)", "Encabezados", "Semestre", "Asignatura",
}

// Each calls fn for every field in column order, passing the JSON name and
// a pointer to the value so fn may rewrite it.
func (s *SheetRow) Each(fn func(name string, v *string)) {
	fn("titulo", &s.Titulo)
	fn("link", &s.Link)
	fn("descripcion", &s.Descripcion)
	fn("keyword1", &s.Keyword1)
	fn("keyword2", &s.Keyword2)
	fn("keyword3", &s.Keyword3)
	fn("responsabilidad", &s.Responsabilidad)
	fn("tipoEducativo", &s.TipoEducativo)
	fn("categoria", &s.Categoria)
	fn("usoEducativo", &s.UsoEducativo)
	fn("encabezados", &s.Encabezados)
	fn("semestre", &s.Semestre)
	fn("asignatura", &s.Asignatura)
}
