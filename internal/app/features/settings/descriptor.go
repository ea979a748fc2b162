// Package settings defines the Settings admin section: the site's single
// configuration record, edited in place.
package settings

import (
	"net/url"

	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
)

// Descriptor configures the shared controller for site settings. The
// section is single-record: its root is the edit form, and there is no
// list or delete.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:          "settings",
		Resource:     "settings",
		Singular:     "settings",
		Plural:       "settings",
		TitleField:   "siteName",
		SingleRecord: true,

		Fields: []crud.Field{
			{Name: "siteName", Label: "Site name", Kind: crud.KindText, Required: true},
			{Name: "contactEmail", Label: "Contact email", Kind: crud.KindEmail, Required: true},
			{Name: "contactPhone", Label: "Contact phone", Kind: crud.KindText},
			{Name: "address", Label: "Address", Kind: crud.KindTextarea},
			{Name: "workingHours", Label: "Working hours", Kind: crud.KindText},
			{Name: "facebookUrl", Label: "Facebook", Kind: crud.KindText},
			{Name: "twitterUrl", Label: "Twitter", Kind: crud.KindText},
			{Name: "instagramUrl", Label: "Instagram", Kind: crud.KindText},
			{Name: "linkedinUrl", Label: "LinkedIn", Kind: crud.KindText},
		},

		Validate: func(res *inputval.Result, form url.Values, _ bool) {
			for _, name := range []string{"facebookUrl", "twitterUrl", "instagramUrl", "linkedinUrl"} {
				if v := form.Get(name); v != "" && !inputval.IsValidHTTPURL(v) {
					res.Add(name, "Enter a full http(s) URL.")
				}
			}
		},
	}
}
