// Package timeouts provides centralized timeout values for remote calls.
//
// Every call that leaves the process (the generative model, the spreadsheet
// webhook, the service's own /api endpoints, the submission ledger) runs under
// one of these budgets via context.WithTimeout, so a slow dependency can never
// hold a request open indefinitely.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Validate: a single text-quality check while the user types
//   - Metadata: keyword/header generation with structured output
//   - Submit: relaying a record to the spreadsheet webhook
//   - Ledger: writing one submission document
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultValidate = 8 * time.Second
	DefaultMetadata = 20 * time.Second
	DefaultSubmit   = 15 * time.Second
	DefaultLedger   = 5 * time.Second
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	validate = DefaultValidate
	metadata = DefaultMetadata
	submit   = DefaultSubmit
	ledger   = DefaultLedger
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Validate returns the timeout for one text-quality check.
func Validate() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return validate
}

// Metadata returns the timeout for keyword and header generation.
func Metadata() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return metadata
}

// Submit returns the timeout for relaying a record to the spreadsheet.
func Submit() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return submit
}

// Ledger returns the timeout for writing a submission document.
func Ledger() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ledger
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping     time.Duration
	Validate time.Duration
	Metadata time.Duration
	Submit   time.Duration
	Ledger   time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call it during startup before
// handlers are built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Validate > 0 {
		validate = cfg.Validate
	}
	if cfg.Metadata > 0 {
		metadata = cfg.Metadata
	}
	if cfg.Submit > 0 {
		submit = cfg.Submit
	}
	if cfg.Ledger > 0 {
		ledger = cfg.Ledger
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	validate = DefaultValidate
	metadata = DefaultMetadata
	submit = DefaultSubmit
	ledger = DefaultLedger
}

// Current returns the current timeout configuration as a Config struct.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:     ping,
		Validate: validate,
		Metadata: metadata,
		Submit:   submit,
		Ledger:   ledger,
	}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Metadata(), h.Log, "metadata generation")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
