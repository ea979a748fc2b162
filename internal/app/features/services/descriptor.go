// Package services defines the Services admin section: the engineering
// service catalog shown on the marketing site.
package services

import (
	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
)

var categoryOptions = []crud.Option{
	{Value: "construction", Label: "Construction"},
	{Value: "design", Label: "Design"},
	{Value: "consulting", Label: "Consulting"},
	{Value: "supervision", Label: "Supervision"},
}

// Descriptor configures the shared controller for the service catalog.
// Features and requirements are list-valued (one entry per line in the
// form); the cover image is a multipart file part.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:        "services",
		Resource:   "services",
		Singular:   "service",
		Plural:     "services",
		TitleField: "title",

		SearchPlaceholder: "Search services",
		CategoryOptions:   categoryOptions,
		StatusOptions: []crud.Option{
			{Value: "active", Label: "Active"},
			{Value: "inactive", Label: "Inactive"},
		},

		Fields: []crud.Field{
			{Name: "title", Label: "Title", Kind: crud.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: crud.KindTextarea, Required: true},
			{Name: "category", Label: "Category", Kind: crud.KindSelect, Required: true, Options: categoryOptions},
			{Name: "price", Label: "Price", Kind: crud.KindNumber, Required: true, Help: "In SAR."},
			{Name: "duration", Label: "Duration", Kind: crud.KindText, Help: "e.g. 2-4 weeks."},
			{Name: "features", Label: "Features", Kind: crud.KindStringList},
			{Name: "requirements", Label: "Requirements", Kind: crud.KindStringList},
			{Name: "status", Label: "Status", Kind: crud.KindSelect, Options: []crud.Option{
				{Value: "active", Label: "Active"},
				{Value: "inactive", Label: "Inactive"},
			}},
			{Name: "image", Label: "Cover image", Kind: crud.KindFile},
		},

		Columns: []crud.Column{
			{Label: "Title", Field: "title"},
			{Label: "Category", Field: "category"},
			{Label: "Price", Field: "price"},
			{Label: "Status", Field: "status", Badge: true},
		},
	}
}
