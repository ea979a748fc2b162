// Package logout ends the dashboard session.
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

type Handler struct {
	Log      *zap.Logger
	Sessions *session.Manager
}

func NewHandler(sessions *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Sessions: sessions}
}

// HandleLogout handles POST /logout. Idempotent: logging out while already
// signed out still lands on the marketing home page.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w, r)

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
