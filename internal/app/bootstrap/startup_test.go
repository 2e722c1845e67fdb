package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/registro/internal/app/export/receipt"
	"github.com/dalemusser/registro/internal/app/features/home"
	"github.com/dalemusser/registro/internal/app/features/registro"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testAppConfig() AppConfig {
	return AppConfig{
		MongoDatabase:          "registro",
		SessionKey:             "test-session-key-must-be-32-chars-long",
		SessionName:            "registro-test",
		SessionMaxAge:          time.Hour,
		SessionIdleTimeout:     time.Hour,
		SessionCleanupInterval: time.Minute,
		FieldQuietPeriod:       10 * time.Millisecond,
		AIProvider:             "gemini",
		APIBaseURL:             "http://localhost:8080",
		CORSAllowedOrigins:     []string{"http://localhost:5173"},
		RateLimitMax:           5,
		RateLimitWindow:        time.Minute,
		TrustedProxies:         []string{"127.0.0.0/8", "::1/128"},
		SupportContactName:     "Mesa de ayuda",
		SupportContactEmail:    "ayuda@example.org",
		AuditLogSubmissions:    "log",
		FingerprintSecret:      "fp",
		LedgerTimezone:         "America/Mazatlan",
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test , ,http://b.test,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("blank input should give no entries")
	}
}

func TestAppConfig_ProviderKeys(t *testing.T) {
	cfg := AppConfig{
		AIProvider:      "anthropic",
		GeminiAPIKey:    "g-key",
		GeminiModel:     "g-model",
		AnthropicAPIKey: "a-key",
		AnthropicModel:  "a-model",
	}
	if cfg.apiKey() != "a-key" || cfg.modelName() != "a-model" {
		t.Errorf("anthropic selection = %q/%q", cfg.apiKey(), cfg.modelName())
	}
	cfg.AIProvider = "gemini"
	if cfg.apiKey() != "g-key" || cfg.modelName() != "g-model" {
		t.Errorf("gemini selection = %q/%q", cfg.apiKey(), cfg.modelName())
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", dev, func(*AppConfig) {}, false},
		{"unknown provider", dev, func(c *AppConfig) { c.AIProvider = "openai" }, true},
		{"bad api base", dev, func(c *AppConfig) { c.APIBaseURL = "ftp://x" }, true},
		{"bad webhook", dev, func(c *AppConfig) { c.SheetsWebhookURL = "not a url" }, true},
		{"zero rate limit", dev, func(c *AppConfig) { c.RateLimitMax = 0 }, true},
		{"bad trusted proxy", dev, func(c *AppConfig) { c.TrustedProxies = []string{"10.0.0.0/33"} }, true},
		{"bad ledger zone", dev, func(c *AppConfig) { c.LedgerTimezone = "Nowhere/Town" }, true},
		{"prod with dev key", prod, func(c *AppConfig) { c.SessionKey = devSessionKey }, true},
		{"prod with real key", prod, func(*AppConfig) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// startApp runs the lifecycle hooks without MongoDB and serves the handler.
// APIBaseURL points back at the test server, as it would in a single-node
// deployment.
func startApp(t *testing.T) *httptest.Server {
	t.Helper()
	defer timeouts.Reset()

	var h atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Load().(http.Handler).ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	core := &config.CoreConfig{Env: "dev"}
	cfg := testAppConfig()
	cfg.APIBaseURL = srv.URL

	deps, err := ConnectDB(ctx, core, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.MongoClient != nil {
		t.Fatal("no client expected without a URI")
	}
	if err := EnsureSchema(ctx, core, cfg, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := Startup(ctx, core, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if deps.Services.Model != nil {
		t.Error("no model expected without an API key")
	}
	t.Cleanup(func() {
		if err := Shutdown(context.Background(), core, cfg, deps, testLogger()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	handler, err := BuildHandler(core, cfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	h.Store(handler)
	return srv
}

func TestBuildHandler_BannerAndHealth(t *testing.T) {
	srv := startApp(t)

	resp, err := http.Get(srv.URL + "/api")
	if err != nil {
		t.Fatalf("GET /api: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != home.Banner {
		t.Errorf("GET /api = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp.StatusCode != http.StatusOK || health["status"] != "ok" {
		t.Errorf("health = %d %v", resp.StatusCode, health)
	}
	if health["database"] != "not_configured" || health["sheets"] != "not_configured" {
		t.Errorf("health should report missing backends: %v", health)
	}
}

func TestBuildHandler_CORSAllowList(t *testing.T) {
	srv := startApp(t)

	preflight := func(origin string) string {
		req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/validate", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("preflight: %v", err)
		}
		resp.Body.Close()
		return resp.Header.Get("Access-Control-Allow-Origin")
	}

	if got := preflight("http://localhost:5173"); got != "http://localhost:5173" {
		t.Errorf("allowed origin echoed as %q", got)
	}
	if got := preflight("http://evil.test"); got != "" {
		t.Errorf("foreign origin got %q", got)
	}
}

func TestBuildHandler_ValidateWithoutModel(t *testing.T) {
	srv := startApp(t)

	resp, err := http.Post(srv.URL+"/api/validate", "application/json", strings.NewReader(`{"text":"hola","context":"Título"}`))
	if err != nil {
		t.Fatalf("POST /api/validate: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusInternalServerError || !strings.Contains(string(body), "Validation failed") {
		t.Errorf("validate without model = %d %s", resp.StatusCode, body)
	}
}

// With no model and no webhook the pipeline still runs end to end: the
// metadata falls back, the submission reports an error and the receipt is
// delivered anyway.
func TestBuildHandler_FinalizeWithoutBackends(t *testing.T) {
	srv := startApp(t)

	jar, _ := cookiejar.New(nil)
	hc := &http.Client{Jar: jar}

	patch, _ := json.Marshal(map[string]any{
		"zona":                 "Centro",
		"planteles":            []string{"Plantel 01 Culiacán"},
		"titulo":               "Fracciones en la vida diaria",
		"tipoRecurso":          "https://example.org/fracciones",
		"descripcion":          "Video corto sobre fracciones aplicadas a recetas",
		"numColaboradores":     "1",
		"nombre1":              "Ana López",
		"tipoRecursoEducativo": "Video",
		"categoria":            "Matemáticas",
		"objetivo":             "Aplicar fracciones en situaciones cotidianas",
		"semestre":             "1",
		"asignatura":           "Matemáticas I",
		"tema":                 "Fracciones",
	})
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/registro/draft", bytes.NewReader(patch))
	req.Header.Set("Content-Type", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		t.Fatalf("PATCH draft: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH draft status %d", resp.StatusCode)
	}

	resp, err = hc.Post(srv.URL+"/registro/finalize", "application/json", nil)
	if err != nil {
		t.Fatalf("POST finalize: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("finalize status %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != receipt.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("receipt is not a PDF")
	}
	if got := resp.Header.Get(registro.HeaderStatus); got != "error" {
		t.Errorf("%s = %q, want error", registro.HeaderStatus, got)
	}
}

func TestEnsureSchema_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := EnsureSchema(ctx, nil, testAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	cur, err := db.Collection("submissions").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	var idx []bson.M
	if err := cur.All(ctx, &idx); err != nil {
		t.Fatalf("decode indexes: %v", err)
	}
	// _id plus the ledger indexes
	if len(idx) < 2 {
		t.Errorf("got %d indexes, want at least 2", len(idx))
	}
}

func TestBuildHandler_LedgerNeedsDatabaseAndToken(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}
	cfg := testAppConfig()
	cfg.LedgerToken = "op-token"

	get := func(h http.Handler, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Without MongoDB the route is not mounted.
	h, err := BuildHandler(core, cfg, DBDeps{Services: &Services{}}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	if code := get(h, "op-token"); code != http.StatusNotFound {
		t.Errorf("ledger without db = %d, want 404", code)
	}

	db := testutil.SetupTestDB(t)
	h, err = BuildHandler(core, cfg, DBDeps{MongoDatabase: db, Services: &Services{}}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	if code := get(h, ""); code != http.StatusUnauthorized {
		t.Errorf("ledger without token = %d, want 401", code)
	}
	if code := get(h, "op-token"); code != http.StatusOK {
		t.Errorf("ledger with token = %d, want 200", code)
	}
}
