// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/registro/internal/app/client/metagen"
	"github.com/dalemusser/registro/internal/app/client/submit"
	"github.com/dalemusser/registro/internal/app/export/orchestrator"
	"github.com/dalemusser/registro/internal/app/export/receipt"
	healthfeature "github.com/dalemusser/registro/internal/app/features/health"
	homefeature "github.com/dalemusser/registro/internal/app/features/home"
	ledgerfeature "github.com/dalemusser/registro/internal/app/features/ledger"
	metadatafeature "github.com/dalemusser/registro/internal/app/features/metadata"
	registrofeature "github.com/dalemusser/registro/internal/app/features/registro"
	saveresourcefeature "github.com/dalemusser/registro/internal/app/features/saveresource"
	validatefeature "github.com/dalemusser/registro/internal/app/features/validate"
	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/store/submissions"
	"github.com/dalemusser/registro/internal/app/system/auditlog"
	"github.com/dalemusser/registro/internal/app/system/auth"
	"github.com/dalemusser/registro/internal/app/system/fingerprint"
	"github.com/dalemusser/registro/internal/app/system/sheets"
	"github.com/dalemusser/registro/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The router carries:
//   - /health for load balancers
//   - /api: the banner, /validate, /metadata and /save-resource, behind the
//     CORS allow-list
//   - /registro: the server-side multi-step form and its finalize pipeline
//   - /ledger: operator listing of submission attempts (MongoDB and token only)
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := deps.Services
	if svc == nil {
		svc = &Services{}
	}
	if svc.Sessions == nil {
		svc.Sessions = formsessions.New(nil)
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg != nil && coreCfg.Env == "prod"
	cookies, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	sheetClient := sheets.New(appCfg.SheetsWebhookURL, appCfg.SheetsWebhookSecret, nil, logger)

	// The ledger store is only wired when MongoDB is configured; a nil
	// Recorder leaves submissions in the structured log.
	var recorder auditlog.Recorder
	if deps.MongoDatabase != nil {
		recorder = submissions.New(deps.MongoDatabase)
	}
	audit := auditlog.New(recorder, fingerprint.New(appCfg.FingerprintSecret), logger, auditlog.Config{
		Submissions: appCfg.AuditLogSubmissions,
	})

	r := chi.NewRouter()

	modelName := ""
	if svc.Model != nil {
		modelName = svc.Model.Name()
	}
	healthHandler := healthfeature.NewHandler(deps.MongoClient, modelName, sheetClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: appCfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Retry-After"},
			MaxAge:         300,
		}))

		api.Mount("/", homefeature.Routes(homefeature.NewHandler(logger)))
		api.Mount("/validate", validatefeature.Routes(validatefeature.NewHandler(svc.Model, logger)))
		api.Mount("/metadata", metadatafeature.Routes(metadatafeature.NewHandler(svc.Model, logger)))

		saveHandler := saveresourcefeature.NewHandler(sheetClient, audit, logger)
		api.Mount("/save-resource", saveresourcefeature.Routes(saveHandler, svc.Limiter))
	})

	// The finalize pipeline talks to /api over HTTP, like the browser form.
	pipeline := orchestrator.New(
		metagen.New(appCfg.APIBaseURL, nil, logger),
		submit.New(appCfg.APIBaseURL, nil, logger),
		receipt.Exporter{},
		logger,
	)
	contact := registrofeature.Contact{Name: appCfg.SupportContactName, Email: appCfg.SupportContactEmail}
	registroHandler := registrofeature.NewHandler(svc.Sessions, cookies, pipeline, contact, logger)

	r.Route("/registro", func(rr chi.Router) {
		rr.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition", registrofeature.HeaderStatus, registrofeature.HeaderResult},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		rr.Mount("/", registrofeature.Routes(registroHandler))
	})

	// Operator view of the ledger, for recovering records the spreadsheet
	// never received.
	if deps.MongoDatabase != nil && appCfg.LedgerToken != "" {
		loc, err := timezones.Location(appCfg.LedgerTimezone)
		if err != nil {
			logger.Error("ledger timezone", zap.Error(err))
			return nil, err
		}
		ledgerHandler := ledgerfeature.NewHandler(submissions.New(deps.MongoDatabase), loc, logger)
		r.Mount("/ledger", ledgerfeature.Routes(ledgerHandler, appCfg.LedgerToken, logger))
	}

	return r, nil
}
