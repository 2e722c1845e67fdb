// internal/app/system/limits/limits.go
package limits

// Request body size limits for the public endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxAPIBody caps every /api request body (validate, metadata, save-resource).
	MaxAPIBody = 10 << 10 // 10 KB

	// MaxDraftPatch caps a single form-session field update.
	MaxDraftPatch = 10 << 10 // 10 KB

	// MaxUpstreamResponse caps how much of a remote response we read.
	MaxUpstreamResponse = 64 << 10 // 64 KB
)
