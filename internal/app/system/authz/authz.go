// Package authz resolves roles into capabilities. It is the single place
// role-based branching lives: the shell consults it to build the sidebar,
// and every list/form controller consults it for action visibility, instead
// of scattering role string comparisons across features.
package authz

import (
	"net/http"
	"strings"

	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

// Roles recognized by the dashboard. The backend is the authority on which
// role a user holds; unknown roles resolve to no capabilities.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Section identifies one sidebar entry / dashboard area.
type Section struct {
	Key   string
	Label string
	Path  string
	Icon  string
}

// The full section catalog, in sidebar order.
var sections = []Section{
	{Key: "dashboard", Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Key: "users", Label: "Users", Path: "/users", Icon: "users"},
	{Key: "services", Label: "Services", Path: "/services", Icon: "wrench"},
	{Key: "orders", Label: "Orders", Path: "/orders", Icon: "clipboard"},
	{Key: "projects", Label: "Projects", Path: "/projects", Icon: "briefcase"},
	{Key: "content", Label: "Content", Path: "/content", Icon: "document"},
	{Key: "settings", Label: "Settings", Path: "/settings", Icon: "cog"},
}

// viewable maps role to the section keys the role may open.
var viewable = map[string]map[string]bool{
	RoleAdmin: {
		"dashboard": true, "users": true, "services": true, "orders": true,
		"projects": true, "content": true, "settings": true,
	},
	RoleEditor: {
		"dashboard": true, "services": true, "orders": true,
		"projects": true, "content": true,
	},
	RoleViewer: {
		"dashboard": true, "services": true, "orders": true,
		"projects": true, "content": true,
	},
}

// manageable maps role to the section keys the role may create/edit/delete in.
var manageable = map[string]map[string]bool{
	RoleAdmin: {
		"users": true, "services": true, "orders": true,
		"projects": true, "content": true, "settings": true,
	},
	RoleEditor: {
		"services": true, "orders": true, "projects": true, "content": true,
	},
}

// SectionsFor returns the sidebar entries visible to a role, in order.
func SectionsFor(role string) []Section {
	allowed := viewable[strings.ToLower(role)]
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if allowed[s.Key] {
			out = append(out, s)
		}
	}
	return out
}

// CanView reports whether a role may open a section at all.
func CanView(role, sectionKey string) bool {
	return viewable[strings.ToLower(role)][sectionKey]
}

// CanManage reports whether a role may create, edit, or delete records in a
// section.
func CanManage(role, sectionKey string) bool {
	return manageable[strings.ToLower(role)][sectionKey]
}

// RolesThatCanView lists every role allowed to open a section; route
// builders feed this to the session middleware's RequireRole.
func RolesThatCanView(sectionKey string) []string {
	var out []string
	for _, role := range []string{RoleAdmin, RoleEditor, RoleViewer} {
		if viewable[role][sectionKey] {
			out = append(out, role)
		}
	}
	return out
}

// CanDeleteItem reports whether the signed-in user may delete the given
// record in a section. Deleting the identity behind the active session is
// never offered, so the row action set must omit it.
func CanDeleteItem(u *session.User, sectionKey, itemID string) bool {
	if u == nil || !CanManage(u.Role, sectionKey) {
		return false
	}
	if sectionKey == "users" && itemID != "" && itemID == u.ID {
		return false
	}
	return true
}

// UserCtx returns the current user's role (lowercased), name, id, and a
// found flag. Absent user yields "visitor" so templates can branch safely.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	u, ok := session.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(u.Role), u.Name, u.ID, true
}
