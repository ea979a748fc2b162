// Package users defines the Users admin section: customer and staff
// accounts managed through the shared resource controller.
package users

import (
	"net/url"

	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
)

// Descriptor configures the shared controller for user accounts.
// Passwords are create-only: edits never resend credentials. The avatar
// travels as a multipart file part and is omitted when unchanged.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:        "users",
		Resource:   "users",
		Singular:   "user",
		Plural:     "users",
		TitleField: "name",

		SearchPlaceholder: "Search by name or email",
		StatusOptions: []crud.Option{
			{Value: "active", Label: "Active"},
			{Value: "inactive", Label: "Inactive"},
		},

		Fields: []crud.Field{
			{Name: "name", Label: "Name", Kind: crud.KindText, Required: true},
			{Name: "email", Label: "Email", Kind: crud.KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: crud.KindPassword, Required: true, CreateOnly: true,
				Help: "At least 8 characters."},
			{Name: "role", Label: "Role", Kind: crud.KindSelect, Required: true, Options: []crud.Option{
				{Value: "viewer", Label: "Viewer"},
				{Value: "editor", Label: "Editor"},
				{Value: "admin", Label: "Admin"},
			}},
			{Name: "phone", Label: "Phone", Kind: crud.KindText},
			{Name: "status", Label: "Status", Kind: crud.KindSelect, Options: []crud.Option{
				{Value: "active", Label: "Active"},
				{Value: "inactive", Label: "Inactive"},
			}},
			{Name: "avatar", Label: "Avatar", Kind: crud.KindFile},
		},

		Columns: []crud.Column{
			{Label: "Name", Field: "name"},
			{Label: "Email", Field: "email"},
			{Label: "Role", Field: "role", Badge: true},
			{Label: "Status", Field: "status", Badge: true},
		},

		Validate: func(res *inputval.Result, form url.Values, isCreate bool) {
			if isCreate {
				inputval.CheckMinLen(res, "password", "Password", form.Get("password"), 8)
			}
		},
	}
}
