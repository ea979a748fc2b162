// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, request limits). AppConfig is everything specific to this
// application: where the Mohandz backend lives, how sessions are signed,
// and the per-call timeout budget.
type AppConfig struct {
	// Backend API configuration
	APIBaseURL string        // Base URL of the Mohandz backend (e.g., https://api.mohandz.com)
	APITimeout time.Duration // Transport-level timeout for backend calls

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: mohandz-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Handler timeout overrides (zero keeps the defaults)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
