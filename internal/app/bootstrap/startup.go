// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/meditrip/internal/app/resources"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	viewdata.Init(appCfg.SiteName)
	resources.LoadSharedTemplates()

	logger.Info("startup complete",
		zap.String("site", viewdata.SiteName()),
		zap.Bool("journal", deps.MongoDatabase != nil),
		zap.Any("timeouts", timeouts.Current()))
	return nil
}
