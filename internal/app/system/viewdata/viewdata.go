// Package viewdata builds the shared view-model base every page embeds.
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/flash"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

// DefaultSiteName is used until backend settings provide one.
const DefaultSiteName = "Mohandz"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, sessions, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site identity
	SiteName string

	// User context (from session middleware)
	IsLoggedIn bool
	Role       string
	UserName   string
	UserAvatar string

	// Sidebar entries the current role may open, in display order.
	Sections []authz.Section

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// Queued notifications, drained for this render.
	Flashes []flash.Message
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - w: the response writer (draining flashes rewrites the session cookie)
//   - sessions: session manager, nil in tests that skip flash handling
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(w http.ResponseWriter, r *http.Request, sessions *session.Manager, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    DefaultSiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Sections:    authz.SectionsFor(role),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if u, ok := session.CurrentUser(r); ok {
		vm.UserAvatar = u.Avatar
	}

	if sessions != nil {
		vm.Flashes = sessions.Flashes(w, r)
	}

	return vm
}

// CanManage reports whether the page's user may mutate a section; templates
// use it to show or hide action buttons.
func (vm BaseVM) CanManage(sectionKey string) bool {
	return authz.CanManage(vm.Role, sectionKey)
}

// IsActive reports whether a sidebar path matches the page being rendered.
func (vm BaseVM) IsActive(path string) bool {
	return vm.CurrentPath == path
}
