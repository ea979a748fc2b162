// Package login renders the sign-in form and exchanges credentials for a
// backend session token.
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	uierrors "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
	"github.com/mohandz/mohandz-admin/internal/app/system/viewdata"
)

type Handler struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	render renderer
}

// renderer mirrors the crud feature's test seam for template output.
type renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data any)
}

type waffleRenderer struct{}

func (waffleRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

// NewHandler constructs the login feature handler.
func NewHandler(api *apiclient.Client, sessions *session.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Sessions: sessions, Log: logger, ErrLog: errLog, render: waffleRenderer{}}
}

// SetRenderer overrides template output. Test helper only.
func (h *Handler) SetRenderer(r renderer) { h.render = r }

// credentials is the login submission, shaped for tag-based validation.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
	Errors    map[string]string
}

// ServeLogin handles GET /login. An already signed-in user is sent straight
// to the dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, h.Sessions, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

// HandleLoginPost handles POST /login.
//
// Input is validated before any network call: a malformed email or empty
// password re-renders the form with inline messages and never reaches the
// backend. On success the bearer token and identity snapshot go into the
// session and the user lands on the page they originally asked for.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(r, "login", err)
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	ret := r.PostFormValue("return")

	res := inputval.Struct(credentials{Email: email, Password: password})
	if res.HasErrors() {
		h.renderForm(w, r, email, ret, "", res.ByField())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "login")
	defer cancel()

	token, user, err := h.API.Login(ctx, email, password)
	if err != nil {
		var apiErr *apiclient.APIError
		switch {
		case errors.Is(err, apiclient.ErrUnauthenticated):
			h.renderForm(w, r, email, ret, "Incorrect email or password.", nil)
		case errors.As(err, &apiErr) && apiErr.Message != "":
			h.renderForm(w, r, email, ret, apiErr.Message, nil)
		default:
			h.ErrLog.LogUpstream(r, "login", err)
			h.renderForm(w, r, email, ret, apiclient.UserMessage(err), nil)
		}
		return
	}

	if err := h.Sessions.SignIn(w, r, token, session.User{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Avatar: user.Avatar,
	}); err != nil {
		h.ErrLog.LogServerError(r, "login", err)
		h.renderForm(w, r, email, ret, "Could not start your session. Please try again.", nil)
		return
	}

	h.Log.Info("user signed in", zap.String("email", email), zap.String("role", user.Role))
	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, email, ret, topErr string, fieldErrs map[string]string) {
	h.render.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, h.Sessions, "Sign in", "/"),
		Error:     topErr,
		Email:     email,
		ReturnURL: ret,
		Errors:    fieldErrs,
	})
}
