package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/mohandz/mohandz-admin/internal/app/system/session"
)

func TestSectionsFor(t *testing.T) {
	admin := SectionsFor("admin")
	if len(admin) != 7 {
		t.Errorf("admin sections = %d, want 7", len(admin))
	}

	editor := SectionsFor("editor")
	for _, s := range editor {
		if s.Key == "users" || s.Key == "settings" {
			t.Errorf("editor should not see %q", s.Key)
		}
	}

	if got := SectionsFor("visitor"); len(got) != 0 {
		t.Errorf("visitor sections = %v, want none", got)
	}

	// Role casing comes from the backend; resolution is case-insensitive.
	if len(SectionsFor("Admin")) != len(admin) {
		t.Error("role lookup should be case-insensitive")
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		role    string
		section string
		want    bool
	}{
		{"admin", "users", true},
		{"admin", "settings", true},
		{"editor", "services", true},
		{"editor", "users", false},
		{"editor", "settings", false},
		{"viewer", "orders", true},
		{"viewer", "users", false},
		{"visitor", "dashboard", false},
		{"", "dashboard", false},
	}

	for _, tt := range tests {
		if got := CanView(tt.role, tt.section); got != tt.want {
			t.Errorf("CanView(%q, %q) = %v, want %v", tt.role, tt.section, got, tt.want)
		}
	}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		role    string
		section string
		want    bool
	}{
		{"admin", "users", true},
		{"admin", "settings", true},
		{"editor", "services", true},
		{"editor", "users", false},
		{"editor", "settings", false},
		{"viewer", "services", false},
		{"viewer", "orders", false},
		{"visitor", "services", false},
	}

	for _, tt := range tests {
		if got := CanManage(tt.role, tt.section); got != tt.want {
			t.Errorf("CanManage(%q, %q) = %v, want %v", tt.role, tt.section, got, tt.want)
		}
	}
}

func TestRolesThatCanView(t *testing.T) {
	users := RolesThatCanView("users")
	if len(users) != 1 || users[0] != RoleAdmin {
		t.Errorf("RolesThatCanView(users) = %v, want [admin]", users)
	}

	services := RolesThatCanView("services")
	if len(services) != 3 {
		t.Errorf("RolesThatCanView(services) = %v, want all three roles", services)
	}
}

func TestCanDeleteItem(t *testing.T) {
	admin := &session.User{ID: "u-1", Role: "admin"}
	editor := &session.User{ID: "u-2", Role: "editor"}
	viewer := &session.User{ID: "u-3", Role: "viewer"}

	if !CanDeleteItem(admin, "users", "u-other") {
		t.Error("admin should delete other users")
	}
	if CanDeleteItem(admin, "users", "u-1") {
		t.Error("deleting the account behind the active session must be blocked")
	}
	if !CanDeleteItem(editor, "services", "svc-1") {
		t.Error("editor should delete services")
	}
	if CanDeleteItem(editor, "users", "u-other") {
		t.Error("editor cannot manage users at all")
	}
	if CanDeleteItem(viewer, "services", "svc-1") {
		t.Error("viewer cannot delete anything")
	}
	if CanDeleteItem(nil, "services", "svc-1") {
		t.Error("nil user cannot delete")
	}
}

func TestUserCtx(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard", nil)

	role, name, id, ok := UserCtx(r)
	if ok {
		t.Error("UserCtx() ok = true for anonymous request")
	}
	if role != "visitor" || name != "" || id != "" {
		t.Errorf("UserCtx() = (%q, %q, %q), want visitor defaults", role, name, id)
	}

	r = session.WithTestUser(r, &session.User{ID: "u-9", Name: "Amira", Role: "Editor"})
	role, name, id, ok = UserCtx(r)
	if !ok {
		t.Fatal("UserCtx() ok = false with user in context")
	}
	if role != "editor" {
		t.Errorf("role = %q, want lowercased %q", role, "editor")
	}
	if name != "Amira" || id != "u-9" {
		t.Errorf("UserCtx() = (%q, %q)", name, id)
	}
}
