package crud

import (
	"net/http"

	"github.com/gorilla/csrf"

	uierrors "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/flash"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
)

type deleteModalData struct {
	Singular string
	Name     string
	// Action is the POST target that performs the delete.
	Action    string
	Return    string
	CSRFToken string
}

// ServeDeleteModal handles GET /{section}/{id}/delete_modal.
//
// The confirmation is rendered from what the row already shows; nothing is
// fetched. The destructive call happens only in HandleDelete, after the
// user confirms.
func (h *Handler) ServeDeleteModal(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireManage(w, r)
	if !ok {
		return
	}
	id := pathID(r)

	if !authz.CanDeleteItem(u, h.Desc.Key, id) {
		uierrors.RenderForbidden(w, r, "This "+h.Desc.Singular+" cannot be deleted from your session.", h.Desc.BasePath())
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "this " + h.Desc.Singular
	}

	h.render.RenderSnippet(w, "resource_delete_modal", deleteModalData{
		Singular:  h.Desc.Singular,
		Name:      name,
		Action:    h.Desc.BasePath() + "/" + id + "/delete",
		Return:    r.URL.Query().Get("return"),
		CSRFToken: csrf.Token(r),
	})
}

// HandleDelete handles POST /{section}/{id}/delete. Exactly one upstream
// delete is issued per confirmed request; the redirect back to the list
// refetches so the removed row disappears from the backend's own state.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireManage(w, r)
	if !ok {
		return
	}
	id := pathID(r)

	if !authz.CanDeleteItem(u, h.Desc.Key, id) {
		uierrors.RenderForbidden(w, r, "This "+h.Desc.Singular+" cannot be deleted from your session.", h.Desc.BasePath())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, h.Desc.Key+" delete")
	defer cancel()

	if err := h.api(r).Delete(ctx, h.Desc.Resource, id); err != nil {
		h.handleUpstreamErr(w, r, err, h.returnTo(r))
		return
	}

	h.Sessions.Flash(w, r, flash.New(flash.Success, h.Desc.Singular+" deleted", ""))

	dest := h.returnTo(r)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
