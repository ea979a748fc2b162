// Package content defines the Content admin section: pages, posts, and FAQ
// entries whose bodies are rich text.
package content

import (
	"net/url"
	"regexp"

	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Descriptor configures the shared controller for site content. Bodies are
// rich text and pass through sanitization before any HTML rendering.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:        "content",
		Resource:   "content",
		Singular:   "content entry",
		Plural:     "content entries",
		TitleField: "title",

		SearchPlaceholder: "Search content",
		CategoryOptions: []crud.Option{
			{Value: "page", Label: "Page"},
			{Value: "post", Label: "Post"},
			{Value: "faq", Label: "FAQ"},
		},
		StatusOptions: []crud.Option{
			{Value: "draft", Label: "Draft"},
			{Value: "published", Label: "Published"},
		},

		Fields: []crud.Field{
			{Name: "title", Label: "Title", Kind: crud.KindText, Required: true},
			{Name: "slug", Label: "Slug", Kind: crud.KindText, Required: true,
				Help: "Lowercase letters, digits, and hyphens."},
			{Name: "type", Label: "Type", Kind: crud.KindSelect, Required: true, Options: []crud.Option{
				{Value: "page", Label: "Page"},
				{Value: "post", Label: "Post"},
				{Value: "faq", Label: "FAQ"},
			}},
			{Name: "body", Label: "Body", Kind: crud.KindRichText, Required: true},
			{Name: "status", Label: "Status", Kind: crud.KindSelect, Required: true, Options: []crud.Option{
				{Value: "draft", Label: "Draft"},
				{Value: "published", Label: "Published"},
			}},
		},

		Columns: []crud.Column{
			{Label: "Title", Field: "title"},
			{Label: "Slug", Field: "slug"},
			{Label: "Type", Field: "type"},
			{Label: "Status", Field: "status", Badge: true},
		},

		Validate: func(res *inputval.Result, form url.Values, isCreate bool) {
			if slug := form.Get("slug"); slug != "" && !slugRe.MatchString(slug) {
				res.Add("slug", "Slug may contain only lowercase letters, digits, and hyphens.")
			}
		},
	}
}
