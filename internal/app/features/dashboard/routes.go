package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(authz.RolesThatCanView("dashboard")...))
		pr.Get("/", h.ServeDashboard)
	})

	return r
}
