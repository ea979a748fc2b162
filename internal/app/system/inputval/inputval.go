// Package inputval validates user input before it leaves the dashboard.
// Form handlers run these checks first and re-render with inline messages on
// failure, so no network round trip is spent on input we can reject locally.
package inputval

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is one validation failure, keyed by form field name.
type FieldError struct {
	Field   string
	Message string
}

// Result accumulates validation failures in the order they were found.
type Result struct {
	errs []FieldError
}

// Add records a failure for a field.
func (r *Result) Add(field, message string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (r *Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the earliest failure message, or "".
func (r *Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0].Message
}

// Message returns the failure message for a field, or "".
func (r *Result) Message(field string) string {
	for _, e := range r.errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// ByField returns the failures keyed by field name for template lookup.
// Only the first failure per field is kept.
func (r *Result) ByField() map[string]string {
	out := make(map[string]string, len(r.errs))
	for _, e := range r.errs {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,http_url") == nil
}

// CheckRequired records a failure when value is empty or whitespace.
func CheckRequired(r *Result, field, label, value string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, label+" is required.")
	}
}

// CheckEmail records a failure when value is not a valid email address.
// Empty values are skipped; pair with CheckRequired when the field is
// mandatory.
func CheckEmail(r *Result, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if !IsValidEmail(value) {
		r.Add(field, "Enter a valid email address.")
	}
}

// CheckMinLen records a failure when value is shorter than min characters.
// Empty values are skipped.
func CheckMinLen(r *Result, field, label, value string, min int) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	if len([]rune(v)) < min {
		r.Add(field, label+" must be at least "+strconv.Itoa(min)+" characters.")
	}
}

// CheckPrice records a failure when value is not a non-negative number.
// Empty values are skipped.
func CheckPrice(r *Result, field, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		r.Add(field, label+" must be a non-negative number.")
	}
}

// CheckOneOf records a failure when value is not in allowed. Empty values
// are skipped; comparison is case-insensitive.
func CheckOneOf(r *Result, field, label, value string, allowed []string) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return
	}
	for _, a := range allowed {
		if v == strings.ToLower(a) {
			return
		}
	}
	r.Add(field, label+" must be one of: "+strings.Join(allowed, ", ")+".")
}

// Struct runs tag-based validation over a form struct and translates the
// failures into per-field messages keyed by the lowercased field name.
func Struct(v any) *Result {
	res := &Result{}
	err := validate.Struct(v)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", "Invalid input.")
		return res
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			res.Add(field, fe.Field()+" is required.")
		case "email":
			res.Add(field, "Enter a valid email address.")
		case "min":
			res.Add(field, fe.Field()+" must be at least "+fe.Param()+" characters.")
		default:
			res.Add(field, fe.Field()+" is invalid.")
		}
	}
	return res
}
