// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	contentfeature "github.com/mohandz/mohandz-admin/internal/app/features/content"
	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
	dashboardfeature "github.com/mohandz/mohandz-admin/internal/app/features/dashboard"
	errorsfeature "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	healthfeature "github.com/mohandz/mohandz-admin/internal/app/features/health"
	homefeature "github.com/mohandz/mohandz-admin/internal/app/features/home"
	loginfeature "github.com/mohandz/mohandz-admin/internal/app/features/login"
	logoutfeature "github.com/mohandz/mohandz-admin/internal/app/features/logout"
	ordersfeature "github.com/mohandz/mohandz-admin/internal/app/features/orders"
	projectsfeature "github.com/mohandz/mohandz-admin/internal/app/features/projects"
	servicesfeature "github.com/mohandz/mohandz-admin/internal/app/features/services"
	settingsfeature "github.com/mohandz/mohandz-admin/internal/app/features/settings"
	usersfeature "github.com/mohandz/mohandz-admin/internal/app/features/users"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration and backend wiring have completed.
// It boots the template engine, applies session and CSRF middleware, and
// mounts the public pages, authentication, and one router per admin
// section. All six resource sections run on the shared crud controller;
// only their descriptors differ.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessions, err := session.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context so
	// session.CurrentUser(r) works in every handler.
	r.Use(sessions.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.API, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessions, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessions, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Dashboard
	dashboardHandler := dashboardfeature.NewHandler(deps.API, sessions, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessions))

	// Admin sections, all on the shared controller
	for _, desc := range []crud.Descriptor{
		usersfeature.Descriptor(),
		servicesfeature.Descriptor(),
		ordersfeature.Descriptor(),
		projectsfeature.Descriptor(),
		contentfeature.Descriptor(),
		settingsfeature.Descriptor(),
	} {
		h := crud.NewHandler(desc, deps.API, sessions, errLog, logger)
		r.Mount(desc.BasePath(), crud.Routes(h, sessions))
	}

	// CSRF protection wraps the whole router; tokens surface in templates
	// via csrf.Token.
	protect := csrf.Protect(
		[]byte(appCfg.SessionKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	)

	return protect(r), nil
}
