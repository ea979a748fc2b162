// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/app/resources"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after backends are
// wired, but before the HTTP handler is built. It loads shared templates
// and applies any handler timeout overrides from config.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	return nil
}
