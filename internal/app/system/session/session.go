// Package session is the dashboard's auth gate. It keeps the bearer token
// and an identity snapshot in a signed cookie session, loads the current
// user into the request context, and guards routes by sign-in state and
// role. It is the only writer of the stored token; the API client is the
// only reader (via Token at call-binding time).
package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/app/system/flash"
)

const (
	isAuthKey  = "is_authenticated"
	tokenKey   = "api_token"
	userIDKey  = "user_id"
	userName   = "user_name"
	userEmail  = "user_email"
	userRole   = "user_role"
	userAvatar = "user_avatar"
)

// User is what we cache in the session and inject into r.Context().
// It mirrors the backend's identity snapshot; the backend remains the
// authority (a present token does not guarantee validity).
type User struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Avatar string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// Manager owns the cookie store and session lifecycle.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager initializes the cookie-backed session store. The session key
// must be at least 32 chars in production; shorter keys are tolerated with a
// warning so local dev stays friction-free.
func NewManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: sessionName, log: logger}, nil
}

// Store exposes the underlying cookie store (used by logout to mirror the
// deletion-cookie options and by flash helpers).
func (m *Manager) Store() *sessions.CookieStore { return m.store }

// Get returns the request's session, creating a fresh one if the cookie is
// absent or fails to decode.
func (m *Manager) Get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// CurrentUser returns the signed-in user and a found flag.
func CurrentUser(r *http.Request) (*User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*User)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing the cookie
// session. Test helper only.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return withUser(r, u)
}

// SignIn records a successful login: stores the bearer token and identity
// snapshot, replacing any previous session state. At most one token lives in
// the store at a time.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token string, u User) error {
	sess, err := m.Get(r)
	if err != nil {
		// Proceed with the fresh session gorilla hands back either way, but a
		// decode failure (stale or tampered cookie) is routine noise while any
		// other store error deserves attention.
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error during sign-in, using fresh session", zap.Error(err))
		}
	}

	sess.Values[isAuthKey] = true
	sess.Values[tokenKey] = token
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userEmail] = u.Email
	sess.Values[userRole] = strings.ToLower(u.Role)
	sess.Values[userAvatar] = u.Avatar

	return sess.Save(r, w)
}

// Token returns the stored bearer token, or "" when signed out.
func (m *Manager) Token(r *http.Request) string {
	sess, err := m.Get(r)
	if err != nil {
		return ""
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return ""
	}
	tok, _ := sess.Values[tokenKey].(string)
	return tok
}

// Clear removes the session cookie. Idempotent: clearing an absent session
// is a no-op success.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	sess, err := m.Get(r)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid during clear, replacing", zap.Error(err))
		} else {
			m.log.Error("session store error during clear", zap.Error(err))
		}
	}

	// Ensure the deletion-cookie matches the original store settings.
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		m.log.Error("clear session failed", zap.Error(err))
	}
}

// ForceLogin handles a backend 401: the stored token is dead, so clear it
// and send the user to the login view. Safe to hit from any controller; a
// request that already redirected is left alone so the redirect fires
// exactly once.
func (m *Manager) ForceLogin(w http.ResponseWriter, r *http.Request) {
	if w.Header().Get("Location") != "" || w.Header().Get("HX-Redirect") != "" {
		return
	}

	m.Clear(w, r)

	dest := "/login?return=" + url.QueryEscape(currentURI(r))
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// Flash queues a notification on the session.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg flash.Message) {
	flash.Add(m.store, m.name, w, r, msg)
}

// Flashes drains queued notifications for rendering.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []flash.Message {
	return flash.Take(m.store, m.name, w, r)
}

// LoadSessionUser injects the user into context if they are signed in.
func (m *Manager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.Get(r)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &User{
				ID:     getString(sess, userIDKey),
				Name:   getString(sess, userName),
				Email:  getString(sess, userEmail),
				Role:   getString(sess, userRole),
				Avatar: getString(sess, userAvatar),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
//
// Protected content is never rendered unauthenticated, even transiently.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures the signed-in user holds one of the allowed roles.
// Unauthorized users get a friendly redirect rather than a blank error.
func (m *Manager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				ret := url.QueryEscape(currentURI(r))
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/login?return="+ret)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
