// Package errors renders friendly error pages and centralizes how handler
// failures are logged.
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler. No upstream access needed; it just
// renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "")
}

// NotFound renders a friendly "not found" page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_not_found", pageData{
		Title:      "Page not found",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "The page you're looking for doesn't exist.",
		BackURL:    "/dashboard",
	})
}

// ErrorLogger gives features a uniform way to log handler failures with
// request context attached.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the app logger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: log}
}

// LogBadRequest records a malformed submission (unparseable form, bad id).
func (e *ErrorLogger) LogBadRequest(r *http.Request, section string, err error) {
	e.Log.Warn("bad request",
		zap.String("section", section),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

// LogUpstream records a failed backend call behind a user-facing page.
func (e *ErrorLogger) LogUpstream(r *http.Request, section string, err error) {
	e.Log.Error("upstream request failed",
		zap.String("section", section),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

// LogServerError records an internal failure while producing a response.
func (e *ErrorLogger) LogServerError(r *http.Request, section string, err error) {
	e.Log.Error("server error",
		zap.String("section", section),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}
