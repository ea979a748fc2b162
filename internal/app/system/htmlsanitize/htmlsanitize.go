// Package htmlsanitize cleans rich-text content before it is rendered into
// pages. Content records carry backend-authored HTML bodies; everything that
// reaches a template as template.HTML must pass through here first.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize strips unsafe markup (scripts, event handlers, dangerous URLs)
// and returns the cleaned HTML.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return policy.Sanitize(input)
}

// SanitizeHTML sanitizes and marks the result safe for template embedding.
func SanitizeHTML(input string) template.HTML {
	return template.HTML(Sanitize(input))
}
