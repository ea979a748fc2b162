package crud

import (
	"github.com/go-chi/chi/v5"

	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

// Routes mounts the section's routes under the path where this router is
// mounted (typically "/"+Desc.Key from bootstrap).
//
// Example mount from bootstrap:
//
//	h := crud.NewHandler(services.Descriptor(), api, sessions, errLog, logger)
//	r.Mount("/services", crud.Routes(h, sessions))
func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(authz.RolesThatCanView(h.Desc.Key)...))

		if h.Desc.SingleRecord {
			pr.Get("/", h.ServeSingle)
			pr.Post("/", h.HandleSingleUpdate)
			return
		}

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}/view", h.ServeView)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Get("/{id}/delete_modal", h.ServeDeleteModal)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
