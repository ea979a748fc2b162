// Package crud is the shared list/form controller behind every admin
// resource section. Users, services, orders, projects, content, and
// settings all follow the same lifecycle (filtered paginated list, create
// and edit forms, confirm-then-delete), so the lifecycle lives here once
// and each section contributes a Descriptor describing its fields, filters,
// and table columns.
package crud

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/inputval"
)

// FieldKind selects the form control and payload encoding for one field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindTextarea FieldKind = "textarea"
	KindRichText FieldKind = "richtext"
	KindSelect   FieldKind = "select"
	// KindStringList renders a textarea taken one entry per line and is
	// sent as a repeated form key.
	KindStringList FieldKind = "stringlist"
	// KindFile is an upload control; its value is the stored file path on
	// read and a new file part on write.
	KindFile FieldKind = "file"
)

// Option is one choice of a select field or list filter.
type Option struct {
	Value string
	Label string
}

// Field describes one form field of a resource.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
	// CreateOnly fields appear on the create form but not on edit
	// (passwords: edits never resend credentials).
	CreateOnly bool
	// Help is an optional hint line under the control.
	Help string
}

// Column describes one list table column.
type Column struct {
	Label string
	// Field is the record key shown in this column.
	Field string
	// Badge renders the value as a status pill.
	Badge bool
}

// Descriptor is everything the shared controller needs to run one resource
// section.
type Descriptor struct {
	// Key is the section key, also the mount path segment ("/"+Key).
	Key string
	// Resource is the backend collection path under the admin API.
	Resource string
	Singular string
	Plural   string

	Fields  []Field
	Columns []Column

	// TitleField names the record key used as the page heading on view,
	// edit, and delete confirmation.
	TitleField string

	SearchPlaceholder string
	CategoryOptions   []Option
	StatusOptions     []Option

	// SingleRecord sections (settings) have no list or delete; the section
	// root is the edit form for the one record.
	SingleRecord bool

	// Validate adds resource-specific checks beyond the required-field pass.
	Validate func(res *inputval.Result, form url.Values, isCreate bool)
}

// BasePath is the URL prefix the section is mounted at.
func (d Descriptor) BasePath() string { return "/" + d.Key }

// fileField returns the descriptor's upload field, if any. At most one file
// field per resource is supported.
func (d Descriptor) fileField() (Field, bool) {
	for _, f := range d.Fields {
		if f.Kind == KindFile {
			return f, true
		}
	}
	return Field{}, false
}

// formFields returns the fields shown on a form. Edit forms drop
// create-only fields.
func (d Descriptor) formFields(isCreate bool) []Field {
	out := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if !isCreate && f.CreateOnly {
			continue
		}
		out = append(out, f)
	}
	return out
}

// validateForm runs the required-field pass plus the descriptor's own
// checks. On create every required field must be present; on edit the same
// holds because edit submits the full field set.
func (d Descriptor) validateForm(form url.Values, isCreate bool) *inputval.Result {
	res := &inputval.Result{}
	for _, f := range d.formFields(isCreate) {
		if f.Kind == KindFile {
			continue
		}
		v := form.Get(f.Name)
		if f.Required {
			inputval.CheckRequired(res, f.Name, f.Label, v)
		}
		switch f.Kind {
		case KindEmail:
			inputval.CheckEmail(res, f.Name, v)
		case KindNumber:
			inputval.CheckPrice(res, f.Name, f.Label, v)
		case KindSelect:
			allowed := make([]string, 0, len(f.Options))
			for _, o := range f.Options {
				allowed = append(allowed, o.Value)
			}
			inputval.CheckOneOf(res, f.Name, f.Label, v, allowed)
		}
	}
	if d.Validate != nil {
		d.Validate(res, form, isCreate)
	}
	return res
}

// payloadFields converts submitted form values into the multipart field
// set sent upstream. The full field set is always sent, never a diff.
func (d Descriptor) payloadFields(form url.Values, isCreate bool) map[string][]string {
	out := make(map[string][]string)
	for _, f := range d.formFields(isCreate) {
		switch f.Kind {
		case KindFile:
			// File parts are handled separately.
		case KindStringList:
			out[f.Name] = splitLines(form.Get(f.Name))
		default:
			out[f.Name] = []string{strings.TrimSpace(form.Get(f.Name))}
		}
	}
	return out
}

// payloadJSON converts submitted form values into the JSON payload for
// resources without a file field. Numbers are sent as numbers.
func (d Descriptor) payloadJSON(form url.Values, isCreate bool) map[string]any {
	out := make(map[string]any)
	for _, f := range d.formFields(isCreate) {
		v := strings.TrimSpace(form.Get(f.Name))
		switch f.Kind {
		case KindFile:
		case KindStringList:
			out[f.Name] = splitLines(form.Get(f.Name))
		case KindNumber:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out[f.Name] = n
			} else {
				out[f.Name] = v
			}
		default:
			out[f.Name] = v
		}
	}
	return out
}

// itemValues extracts a record's current values keyed by field name, for
// prefilling the edit form. List-valued fields come back newline-joined so
// the textarea shows one entry per line.
func (d Descriptor) itemValues(item apiclient.Item) map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		switch f.Kind {
		case KindStringList:
			out[f.Name] = strings.Join(item.Strings(f.Name), "\n")
		default:
			out[f.Name] = item.Str(f.Name)
		}
	}
	return out
}

// title returns the heading for a record, falling back to the singular
// name when the title field is empty.
func (d Descriptor) title(item apiclient.Item) string {
	if t := item.Str(d.TitleField); t != "" {
		return t
	}
	return d.Singular
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
