// Package orders defines the Orders admin section: service requests placed
// by customers, managed through the shared resource controller.
package orders

import (
	"github.com/mohandz/mohandz-admin/internal/app/features/crud"
)

var statusOptions = []crud.Option{
	{Value: "pending", Label: "Pending"},
	{Value: "in_progress", Label: "In progress"},
	{Value: "completed", Label: "Completed"},
	{Value: "cancelled", Label: "Cancelled"},
}

// Descriptor configures the shared controller for customer orders.
func Descriptor() crud.Descriptor {
	return crud.Descriptor{
		Key:        "orders",
		Resource:   "orders",
		Singular:   "order",
		Plural:     "orders",
		TitleField: "orderNumber",

		SearchPlaceholder: "Search by customer or order number",
		StatusOptions:     statusOptions,

		Fields: []crud.Field{
			{Name: "customerName", Label: "Customer", Kind: crud.KindText, Required: true},
			{Name: "customerEmail", Label: "Customer email", Kind: crud.KindEmail},
			{Name: "customerPhone", Label: "Customer phone", Kind: crud.KindText},
			{Name: "serviceTitle", Label: "Service", Kind: crud.KindText, Required: true},
			{Name: "totalPrice", Label: "Total price", Kind: crud.KindNumber},
			{Name: "status", Label: "Status", Kind: crud.KindSelect, Required: true, Options: statusOptions},
			{Name: "notes", Label: "Notes", Kind: crud.KindTextarea},
		},

		Columns: []crud.Column{
			{Label: "Order", Field: "orderNumber"},
			{Label: "Customer", Field: "customerName"},
			{Label: "Service", Field: "serviceTitle"},
			{Label: "Total", Field: "totalPrice"},
			{Label: "Status", Field: "status", Badge: true},
		},
	}
}
