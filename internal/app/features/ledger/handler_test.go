package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/registro/internal/app/features/ledger"
	"github.com/dalemusser/registro/internal/app/store/submissions"
	"github.com/dalemusser/registro/internal/app/system/timezones"
	"github.com/dalemusser/registro/internal/domain/models"
	"github.com/dalemusser/registro/internal/testutil"
	"go.uber.org/zap"
)

type fakeStore struct {
	items  []models.Submission
	total  int64
	err    error
	filter submissions.QueryFilter
}

func (f *fakeStore) Query(ctx context.Context, filter submissions.QueryFilter) ([]models.Submission, error) {
	f.filter = filter
	return f.items, f.err
}

func (f *fakeStore) CountByFilter(ctx context.Context, filter submissions.QueryFilter) (int64, error) {
	return f.total, f.err
}

type page struct {
	Items      []models.Submission `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int64               `json:"total"`
	HasNext    bool                `json:"has_next"`
}

func serve(t *testing.T, store ledger.Lister, url, token string) *httptest.ResponseRecorder {
	t.Helper()
	loc, err := timezones.Location(timezones.Default)
	if err != nil {
		t.Fatal(err)
	}
	h := ledger.NewHandler(store, loc, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ledger.Routes(h, "op-token", zap.NewNop()).ServeHTTP(rec, req)
	return rec
}

func TestList_RequiresToken(t *testing.T) {
	rec := serve(t, &fakeStore{}, "/", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	rec = serve(t, &fakeStore{}, "/", "wrong")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestList_Filters(t *testing.T) {
	store := &fakeStore{
		items: []models.Submission{{Titulo: "Fracciones", Kind: models.SubmissionUnavailable}},
		total: 21,
	}
	rec := serve(t, store, "/?kind=unavailable&outcome=failed&start_date=2025-03-10&end_date=2025-03-11&page=2&limit=10", "op-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	f := store.filter
	if f.Kind != models.SubmissionUnavailable {
		t.Errorf("kind = %q", f.Kind)
	}
	if f.Success == nil || *f.Success {
		t.Error("outcome=failed should filter success=false")
	}
	if f.Limit != 10 || f.Offset != 10 {
		t.Errorf("limit/offset = %d/%d, want 10/10", f.Limit, f.Offset)
	}
	if f.StartTime == nil || !f.StartTime.Equal(time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", f.StartTime)
	}
	if f.EndTime == nil || !f.EndTime.Equal(time.Date(2025, 3, 12, 6, 59, 59, 0, time.UTC)) {
		t.Errorf("end = %v", f.EndTime)
	}

	var p page
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Page != 2 || p.TotalPages != 3 || p.Total != 21 || !p.HasNext {
		t.Errorf("pages = %+v", p)
	}
	if len(p.Items) != 1 || p.Items[0].Titulo != "Fracciones" {
		t.Errorf("items = %+v", p.Items)
	}
}

func TestList_BadParams(t *testing.T) {
	for _, url := range []string{"/?kind=lost", "/?outcome=maybe"} {
		rec := serve(t, &fakeStore{}, url, "op-token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
		}
	}
}

func TestList_StoreError(t *testing.T) {
	rec := serve(t, &fakeStore{err: errors.New("boom")}, "/", "op-token")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	rec := serve(t, &fakeStore{}, "/", "op-token")
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["items"]) != "[]" {
		t.Errorf("items = %s, want []", raw["items"])
	}
}

func TestList_AgainstMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := submissions.New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	for _, s := range []models.Submission{
		{Titulo: "A", Kind: models.SubmissionOK, Success: true},
		{Titulo: "B", Kind: models.SubmissionUnavailable, Success: false},
		{Titulo: "C", Kind: models.SubmissionRejected, Success: false},
	} {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	rec := serve(t, store, "/?outcome=failed", "op-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p page
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Total != 2 || len(p.Items) != 2 {
		t.Errorf("failed entries = %d (%d items), want 2", p.Total, len(p.Items))
	}
}
