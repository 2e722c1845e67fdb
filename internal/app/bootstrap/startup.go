// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/registro/internal/app/client/textquality"
	"github.com/dalemusser/registro/internal/app/fieldcheck"
	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/system/aimodel"
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// It applies the configured timeouts, builds the generative model client,
// the save-resource rate limiter and the in-memory form sessions, and starts
// the idle-session sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Validate: appCfg.TimeoutValidate,
		Metadata: appCfg.TimeoutMetadata,
		Submit:   appCfg.TimeoutSubmit,
	})

	svc := deps.Services
	if svc == nil {
		return errors.New("startup: services not allocated")
	}

	model, err := aimodel.New(ctx, aimodel.Config{
		Provider: appCfg.AIProvider,
		APIKey:   appCfg.apiKey(),
		Model:    appCfg.modelName(),
	})
	switch {
	case errors.Is(err, aimodel.ErrNotConfigured):
		logger.Warn("generative model not configured", zap.String("provider", appCfg.AIProvider))
	case err != nil:
		logger.Error("generative model init failed", zap.Error(err))
		return err
	default:
		svc.Model = model
		logger.Info("generative model ready", zap.String("model", model.Name()))
	}

	proxies, err := ratelimit.ParseProxies(appCfg.TrustedProxies)
	if err != nil {
		return err
	}
	ratelimit.TrustProxies(proxies)
	svc.Limiter = ratelimit.New(appCfg.RateLimitMax, appCfg.RateLimitWindow)

	// Field checks go through /api/validate like any other client.
	checker := textquality.New(appCfg.APIBaseURL, nil, logger)
	quiet := appCfg.FieldQuietPeriod
	svc.Sessions = formsessions.New(func() *fieldcheck.Set {
		return fieldcheck.NewSet(checker, fieldcheck.Options{
			QuietPeriod: quiet,
			Timeout:     timeouts.Validate(),
			Log:         logger,
		})
	})

	svc.Cleanup = workers.NewSessionCleanup(svc.Sessions, logger, appCfg.SessionCleanupInterval, appCfg.SessionIdleTimeout)
	svc.Cleanup.Start()

	return nil
}
