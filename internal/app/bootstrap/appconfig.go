// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level); everything specific to
// the resource registry lives here.
type AppConfig struct {
	// MongoDB backs the submission ledger. A blank URI disables it.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Form session cookie
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name (default: registro-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Form sessions held in memory
	SessionIdleTimeout     time.Duration // Discard a form left untouched this long
	SessionCleanupInterval time.Duration // How often idle forms are swept
	FieldQuietPeriod       time.Duration // Typing pause before a field is checked

	// Generative model
	AIProvider      string // "gemini" or "anthropic"
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// APIBaseURL is where the form pipeline reaches /api/metadata and
	// /api/save-resource. Usually this same service.
	APIBaseURL string

	// Spreadsheet webhook
	SheetsWebhookURL    string
	SheetsWebhookSecret string

	// CORS allow-list for the /api endpoints
	CORSAllowedOrigins []string

	// Fixed-window limit on /api/save-resource per caller
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Peers whose X-Forwarded-For / X-Real-IP name the caller
	TrustedProxies []string

	// Person named on every error panel
	SupportContactName  string
	SupportContactEmail string

	// Remote call budgets (zero keeps the default)
	TimeoutValidate time.Duration
	TimeoutMetadata time.Duration
	TimeoutSubmit   time.Duration

	// Submission ledger: "all" (db+log), "db", "log" or "off"
	AuditLogSubmissions string
	// FingerprintSecret keys the caller hash stored in the ledger
	FingerprintSecret string

	// Operator read access to the ledger. A blank token keeps /ledger unmounted.
	LedgerToken    string
	LedgerTimezone string // IANA zone for start_date/end_date
}

// apiKey returns the key for the selected provider.
func (c AppConfig) apiKey() string {
	if c.AIProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// modelName returns the model for the selected provider.
func (c AppConfig) modelName() string {
	if c.AIProvider == "anthropic" {
		return c.AnthropicModel
	}
	return c.GeminiModel
}
