// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/registro/internal/app/system/aimodel"
	"github.com/dalemusser/registro/internal/app/system/inputval"
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/dalemusser/registro/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the registry.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: gemini_api_key, sheets_webhook_url, etc.
//   - Environment variables: REGISTRO_GEMINI_API_KEY, REGISTRO_SHEETS_WEBHOOK_URL, etc.
//   - Command-line flags: --gemini_api_key, --sheets_webhook_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI for the submission ledger (blank disables it)"},
	{Name: "mongo_database", Default: "registro", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size (default: 20)"},
	{Name: "mongo_min_pool_size", Default: 2, Desc: "MongoDB min connection pool size (default: 2)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "registro-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime"},
	{Name: "session_idle_timeout", Default: "2h", Desc: "Discard form sessions idle this long"},
	{Name: "session_cleanup_interval", Default: "5m", Desc: "How often idle form sessions are swept"},
	{Name: "field_quiet_period", Default: "1s", Desc: "Typing pause before a text field is checked"},

	// Generative model
	{Name: "ai_provider", Default: aimodel.ProviderGemini, Desc: "Generative model provider: 'gemini' or 'anthropic'"},
	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key"},
	{Name: "gemini_model", Default: aimodel.DefaultGeminiModel, Desc: "Gemini model name"},
	{Name: "anthropic_api_key", Default: "", Desc: "Anthropic API key"},
	{Name: "anthropic_model", Default: aimodel.DefaultAnthropicModel, Desc: "Anthropic model name"},

	{Name: "api_base_url", Default: "http://localhost:8080", Desc: "Base URL the form pipeline uses to reach /api"},

	// Spreadsheet webhook
	{Name: "sheets_webhook_url", Default: "", Desc: "Spreadsheet webhook URL (Apps Script web app)"},
	{Name: "sheets_webhook_secret", Default: "", Desc: "Bearer token sent to the spreadsheet webhook"},

	{Name: "cors_allowed_origins", Default: "http://localhost:5173,http://localhost:3000", Desc: "Comma-separated origins allowed to call /api"},

	{Name: "rate_limit_max", Default: 100, Desc: "Max save-resource requests per caller per window"},
	{Name: "rate_limit_window", Default: "15m", Desc: "Save-resource rate limit window"},
	{Name: "trusted_proxies", Default: "127.0.0.0/8,::1/128", Desc: "Comma-separated CIDRs or addresses allowed to set X-Forwarded-For"},

	{Name: "support_contact_name", Default: "Dirección Académica COBAES", Desc: "Contact named on error panels"},
	{Name: "support_contact_email", Default: "", Desc: "Contact email named on error panels"},

	{Name: "timeout_validate", Default: "", Desc: "Text-quality check timeout (e.g., 8s)"},
	{Name: "timeout_metadata", Default: "", Desc: "Metadata generation timeout (e.g., 20s)"},
	{Name: "timeout_submit", Default: "", Desc: "Spreadsheet submission timeout (e.g., 15s)"},

	{Name: "audit_log_submissions", Default: "all", Desc: "Submission logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "fingerprint_secret", Default: "", Desc: "Key for hashing caller IPs in the submission ledger"},
	{Name: "ledger_token", Default: "", Desc: "Bearer token for GET /ledger (blank disables the endpoint)"},
	{Name: "ledger_timezone", Default: timezones.Default, Desc: "IANA zone used to read ledger query dates"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, REGISTRO_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "REGISTRO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:             appValues.String("session_key"),
		SessionName:            appValues.String("session_name"),
		SessionDomain:          appValues.String("session_domain"),
		SessionMaxAge:          appValues.Duration("session_max_age", 12*time.Hour),
		SessionIdleTimeout:     appValues.Duration("session_idle_timeout", 2*time.Hour),
		SessionCleanupInterval: appValues.Duration("session_cleanup_interval", 5*time.Minute),
		FieldQuietPeriod:       appValues.Duration("field_quiet_period", time.Second),

		AIProvider:      strings.ToLower(strings.TrimSpace(appValues.String("ai_provider"))),
		GeminiAPIKey:    appValues.String("gemini_api_key"),
		GeminiModel:     appValues.String("gemini_model"),
		AnthropicAPIKey: appValues.String("anthropic_api_key"),
		AnthropicModel:  appValues.String("anthropic_model"),

		APIBaseURL: strings.TrimRight(appValues.String("api_base_url"), "/"),

		SheetsWebhookURL:    strings.TrimSpace(appValues.String("sheets_webhook_url")),
		SheetsWebhookSecret: appValues.String("sheets_webhook_secret"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		RateLimitMax:    appValues.Int("rate_limit_max"),
		RateLimitWindow: appValues.Duration("rate_limit_window", 15*time.Minute),
		TrustedProxies:  splitList(appValues.String("trusted_proxies")),

		SupportContactName:  appValues.String("support_contact_name"),
		SupportContactEmail: appValues.String("support_contact_email"),

		TimeoutValidate: appValues.Duration("timeout_validate", 0),
		TimeoutMetadata: appValues.Duration("timeout_metadata", 0),
		TimeoutSubmit:   appValues.Duration("timeout_submit", 0),

		AuditLogSubmissions: appValues.String("audit_log_submissions"),
		FingerprintSecret:   appValues.String("fingerprint_secret"),

		LedgerToken:    appValues.String("ledger_token"),
		LedgerTimezone: appValues.String("ledger_timezone"),
	}

	if appCfg.FingerprintSecret == "" {
		appCfg.FingerprintSecret = appCfg.SessionKey
	}

	return coreCfg, appCfg, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// A missing API key or webhook is not fatal: the service starts, the
// affected endpoints fail, and clients fall back as designed.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	switch appCfg.AIProvider {
	case aimodel.ProviderGemini, aimodel.ProviderAnthropic:
	default:
		return fmt.Errorf("ai_provider must be %q or %q, got %q", aimodel.ProviderGemini, aimodel.ProviderAnthropic, appCfg.AIProvider)
	}

	if !inputval.IsValidHTTPURL(appCfg.APIBaseURL) {
		return fmt.Errorf("api_base_url must be an http or https URL, got %q", appCfg.APIBaseURL)
	}
	if appCfg.SheetsWebhookURL != "" && !inputval.IsValidHTTPURL(appCfg.SheetsWebhookURL) {
		return fmt.Errorf("sheets_webhook_url must be an http or https URL")
	}

	if appCfg.RateLimitMax <= 0 || appCfg.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_max and rate_limit_window must be positive")
	}
	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		return err
	}

	if appCfg.LedgerTimezone != "" && !timezones.Valid(appCfg.LedgerTimezone) {
		return fmt.Errorf("ledger_timezone %q is not a known zone", appCfg.LedgerTimezone)
	}
	if appCfg.LedgerToken != "" && appCfg.MongoURI == "" {
		logger.Warn("ledger_token is set but mongo_uri is not; /ledger stays unmounted")
	}

	if coreCfg != nil && coreCfg.Env == "prod" && (appCfg.SessionKey == "" || appCfg.SessionKey == devSessionKey) {
		return fmt.Errorf("session_key must be set in production")
	}

	if appCfg.apiKey() == "" {
		logger.Warn("no generative model API key; /api/validate and /api/metadata will fail and clients will fall back",
			zap.String("provider", appCfg.AIProvider))
	}
	if appCfg.SheetsWebhookURL == "" {
		logger.Warn("no spreadsheet webhook configured; submissions will be reported as unavailable")
	}
	if appCfg.SupportContactEmail == "" {
		logger.Warn("support_contact_email is empty; error panels will only show the contact name")
	}

	return nil
}
