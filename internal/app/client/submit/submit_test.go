package submit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/registro/internal/app/client/apiclient"
	"github.com/dalemusser/registro/internal/app/client/submit"
	"github.com/dalemusser/registro/internal/domain/models"
)

func record() models.ResourceRecord {
	r := models.NewResourceRecord()
	r.Titulo = "Fracciones en la vida diaria"
	r.TipoRecurso = "video"
	r.Descripcion = "Video didáctico"
	r.Nombre1 = "Ana"
	r.Categoria = "Video"
	return r
}

var meta = models.GeneratedMetadata{Keywords: [3]string{"Fracciones", "Didáctica", "Digital"}, Header: "Recurso: Fracciones"}

func TestSubmit_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   models.SubmissionKind
		msg    string
	}{
		{"acknowledged", 200, `{"success":true,"message":"Recurso registrado correctamente"}`, models.SubmissionOK, "Recurso registrado correctamente"},
		{"2xx without ack", 200, `{"success":false}`, models.SubmissionUnavailable, ""},
		{"rejected", 400, `{"error":"Invalid input"}`, models.SubmissionRejected, "Invalid input"},
		{"too large", 413, ``, models.SubmissionRejected, ""},
		{"rate limited", 429, `{"error":"Too many requests, please try again later."}`, models.SubmissionRateLimited, "Too many requests, please try again later."},
		{"upstream failure", 500, `{"error":"Failed to save"}`, models.SubmissionUnavailable, "Failed to save"},
		{"malformed ack", 200, `{"success":`, models.SubmissionUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := submit.New(srv.URL, srv.Client(), nil).Submit(context.Background(), record(), meta)
			if res.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", res.Kind, tt.want)
			}
			if res.OK() != (tt.want == models.SubmissionOK) {
				t.Errorf("OK() = %v", res.OK())
			}
			if tt.msg != "" && res.Message != tt.msg {
				t.Errorf("Message = %q, want %q", res.Message, tt.msg)
			}
			if res.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", res.HTTPStatus, tt.status)
			}
		})
	}
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := submit.New(url, nil, nil).Submit(context.Background(), record(), meta)
	if res.Kind != models.SubmissionUnavailable || res.HTTPStatus != 0 {
		t.Errorf("Result = %+v, want unavailable with no status", res)
	}
}

func TestSubmit_PayloadRoundTrip(t *testing.T) {
	var got models.SheetRow
	var xff string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xff = r.Header.Get("X-Forwarded-For")
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	ctx := apiclient.WithCallerIP(context.Background(), "198.51.100.7")
	submit.New(srv.URL, srv.Client(), nil).Submit(ctx, record(), meta)

	if got.Titulo != "Fracciones en la vida diaria" || got.Descripcion != "Video didáctico" || got.Categoria != "Video" {
		t.Errorf("record fields not recovered: %+v", got)
	}
	if got.Keyword1 != "Fracciones" || got.Keyword2 != "Didáctica" || got.Keyword3 != "Digital" {
		t.Errorf("keywords not recovered: %+v", got)
	}
	if got.Responsabilidad != "Autor: Ana" || got.Encabezados != "Recurso: Fracciones" {
		t.Errorf("derived fields wrong: %+v", got)
	}
	if xff != "198.51.100.7" {
		t.Errorf("X-Forwarded-For = %q", xff)
	}
}

func TestKindForStatus(t *testing.T) {
	tests := map[int]models.SubmissionKind{
		400: models.SubmissionRejected,
		413: models.SubmissionRejected,
		429: models.SubmissionRateLimited,
		500: models.SubmissionUnavailable,
		502: models.SubmissionUnavailable,
		404: models.SubmissionUnavailable,
	}
	for code, want := range tests {
		if got := submit.KindForStatus(code); got != want {
			t.Errorf("KindForStatus(%d) = %q, want %q", code, got, want)
		}
	}
}
