// internal/app/bootstrap/apideps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
)

// Deps holds back-end dependencies for the app. The dashboard keeps no
// database of its own; its only backend is the Mohandz REST API.
type Deps struct {
	API *apiclient.Client
}

// ConnectBackends builds the shared API client. No connection is opened
// here; the client is stateless and per-request calls carry their own
// contexts and tokens.
func ConnectBackends(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	api := apiclient.New(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	logger.Info("backend API client ready", zap.String("base_url", appCfg.APIBaseURL))
	return Deps{API: api}, nil
}

// EnsureSchema is a no-op: the backend owns all persistent state.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
