// Package metagen asks the metadata endpoint for keywords and a header.
//
// Generate never fails: any problem with the remote call yields a
// deterministic fallback derived from the record itself.
package metagen

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/client/apiclient"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Values used when the service answers without keywords or header.
var (
	DefaultKeywords = [3]string{"Educación", "COBAES", "Recurso"}
	DefaultHeader   = "Recurso Didáctico Digital"
)

// Client calls POST /api/metadata.
type Client struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

// New returns a Client for the API at baseURL. hc may be nil.
func New(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{url: apiclient.Endpoint(baseURL, "/api/metadata"), http: hc, log: log}
}

// RequestData is the record subset sent to the metadata endpoint.
type RequestData struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Asignatura  string `json:"asignatura"`
	Tema        string `json:"tema"`
	Categoria   string `json:"categoria,omitempty"`
	Semestre    string `json:"semestre,omitempty"`
}

type request struct {
	Data RequestData `json:"data"`
}

type response struct {
	Keywords []string `json:"keywords"`
	Header   string   `json:"header"`
}

// Fallback derives metadata from the record alone.
func Fallback(r models.ResourceRecord) models.GeneratedMetadata {
	subject := strings.TrimSpace(r.Asignatura)
	if subject == "" {
		subject = strings.TrimSpace(r.Categoria)
	}
	if subject == "" {
		subject = DefaultKeywords[0]
	}
	return models.GeneratedMetadata{
		Keywords: [3]string{subject, "Didáctica", "Digital"},
		Header:   "Recurso: " + r.Titulo,
	}
}

// Generate returns keywords and a header for r.
func (c *Client) Generate(ctx context.Context, r models.ResourceRecord) models.GeneratedMetadata {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Metadata(), c.log, "metadata generation")
	defer cancel()

	in := request{Data: RequestData{
		Titulo:      r.Titulo,
		Descripcion: r.Descripcion,
		Asignatura:  r.Asignatura,
		Tema:        r.Tema,
		Categoria:   r.Categoria,
		Semestre:    r.Semestre,
	}}

	var out response
	if _, err := apiclient.PostJSON(ctx, c.http, c.url, in, &out); err != nil {
		c.log.Warn("metadata generation failed, using fallback", zap.Error(err))
		return Fallback(r)
	}
	return normalize(out, r)
}

// normalize shapes a successful answer into exactly three keywords.
func normalize(out response, r models.ResourceRecord) models.GeneratedMetadata {
	var kws []string
	for _, k := range out.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}

	meta := models.GeneratedMetadata{Header: strings.TrimSpace(out.Header)}
	if meta.Header == "" {
		meta.Header = DefaultHeader
	}

	if len(kws) == 0 {
		meta.Keywords = DefaultKeywords
		return meta
	}
	pad := Fallback(r).Keywords
	for i := range meta.Keywords {
		if i < len(kws) {
			meta.Keywords[i] = kws[i]
		} else {
			meta.Keywords[i] = pad[i]
		}
	}
	return meta
}
