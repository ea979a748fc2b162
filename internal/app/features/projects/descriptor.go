// Package projects defines the Projects admin section: the portfolio of
// completed and ongoing engineering work shown on the marketing site.
package projects

import (
	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
)

var categoryOptions = []crud.Option{
	{Value: "residential", Label: "Residential"},
	{Value: "commercial", Label: "Commercial"},
	{Value: "industrial", Label: "Industrial"},
	{Value: "infrastructure", Label: "Infrastructure"},
}

// Descriptor configures the shared controller for the project portfolio.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:        "projects",
		Resource:   "projects",
		Singular:   "project",
		Plural:     "projects",
		TitleField: "title",

		SearchPlaceholder: "Search projects",
		CategoryOptions:   categoryOptions,
		StatusOptions: []crud.Option{
			{Value: "planned", Label: "Planned"},
			{Value: "ongoing", Label: "Ongoing"},
			{Value: "completed", Label: "Completed"},
		},

		Fields: []crud.Field{
			{Name: "title", Label: "Title", Kind: crud.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: crud.KindTextarea, Required: true},
			{Name: "category", Label: "Category", Kind: crud.KindSelect, Required: true, Options: categoryOptions},
			{Name: "location", Label: "Location", Kind: crud.KindText},
			{Name: "client", Label: "Client", Kind: crud.KindText},
			{Name: "startDate", Label: "Start date", Kind: crud.KindText, Help: "YYYY-MM-DD."},
			{Name: "endDate", Label: "End date", Kind: crud.KindText, Help: "YYYY-MM-DD."},
			{Name: "status", Label: "Status", Kind: crud.KindSelect, Required: true, Options: []crud.Option{
				{Value: "planned", Label: "Planned"},
				{Value: "ongoing", Label: "Ongoing"},
				{Value: "completed", Label: "Completed"},
			}},
			{Name: "image", Label: "Cover image", Kind: crud.KindFile},
		},

		Columns: []crud.Column{
			{Label: "Title", Field: "title"},
			{Label: "Category", Field: "category"},
			{Label: "Location", Field: "location"},
			{Label: "Status", Field: "status", Badge: true},
		},
	}
}
