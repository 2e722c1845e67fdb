// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background workers, drops open form sessions and
// disconnects MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if svc := deps.Services; svc != nil {
		if svc.Cleanup != nil {
			svc.Cleanup.Stop()
		}
		if svc.Limiter != nil {
			svc.Limiter.Stop()
		}
		if svc.Sessions != nil {
			logger.Info("closing form sessions", zap.Int("open", svc.Sessions.Len()))
			svc.Sessions.CloseAll()
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
