package crud

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	uierrors "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/flash"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

// renderer abstracts template output so handler tests can capture the
// template name and data instead of booting the template engine.
type renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data any)
	RenderSnippet(w http.ResponseWriter, name string, data any)
}

type waffleRenderer struct{}

func (waffleRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

func (waffleRenderer) RenderSnippet(w http.ResponseWriter, name string, data any) {
	templates.RenderSnippet(w, name, data)
}

// Handler runs one resource section. The same handler type serves every
// section; behavior differences live in the Descriptor.
type Handler struct {
	Desc     Descriptor
	API      *apiclient.Client
	Sessions *session.Manager
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	render renderer
}

// NewHandler constructs a section handler bound to the upstream client and
// session manager.
func NewHandler(desc Descriptor, api *apiclient.Client, sessions *session.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Desc:     desc,
		API:      api,
		Sessions: sessions,
		Log:      logger,
		ErrLog:   errLog,
		render:   waffleRenderer{},
	}
}

// SetRenderer overrides template output. Test helper only.
func (h *Handler) SetRenderer(r renderer) { h.render = r }

// api returns the upstream client bound to this request's bearer token.
func (h *Handler) api(r *http.Request) *apiclient.Client {
	return h.API.WithToken(h.Sessions.Token(r))
}

// requireManage ensures the signed-in user may mutate this section.
func (h *Handler) requireManage(w http.ResponseWriter, r *http.Request) (*session.User, bool) {
	u, ok := session.CurrentUser(r)
	if !ok {
		h.Sessions.ForceLogin(w, r)
		return nil, false
	}
	if !authz.CanManage(u.Role, h.Desc.Key) {
		uierrors.RenderForbidden(w, r, "You don't have permission to change "+h.Desc.Plural+".", h.Desc.BasePath())
		return nil, false
	}
	return u, true
}

// handleUpstreamErr translates an upstream failure into the standard user
// experience: a dead token forces re-login, anything else queues an error
// notification and sends the user back. Returns true when err was handled.
func (h *Handler) handleUpstreamErr(w http.ResponseWriter, r *http.Request, err error, backTo string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		h.Sessions.ForceLogin(w, r)
		return true
	}

	h.ErrLog.LogUpstream(r, h.Desc.Key, err)
	h.Sessions.Flash(w, r, flash.New(flash.Error, "Something went wrong", apiclient.UserMessage(err)))
	http.Redirect(w, r, backTo, http.StatusSeeOther)
	return true
}

// handleAuthOnly intercepts only the dead-token case; other failures stay
// with the caller (form handlers re-render in place instead of redirecting).
func (h *Handler) handleAuthOnly(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		h.Sessions.ForceLogin(w, r)
		return true
	}
	return false
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
