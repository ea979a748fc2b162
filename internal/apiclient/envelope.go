package apiclient

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Envelope is the response shape the Mohandz backend wraps every payload in.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination describes the server-side position of a list response.
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Item is an opaque backend record. The dashboard never owns the canonical
// schema of a resource; it holds a page-scoped copy purely for rendering and
// form pre-fill, and discards it on the next load.
type Item map[string]any

// ID returns the record identifier, tolerating string and numeric forms.
func (it Item) ID() string {
	switch v := it["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Str returns the named field as a display string ("" when absent).
func (it Item) Str(key string) string {
	switch v := it[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Strings returns the named field as a string slice. Backend list fields
// (service features, requirements) arrive as JSON arrays of strings.
func (it Item) Strings(key string) []string {
	raw, ok := it[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
