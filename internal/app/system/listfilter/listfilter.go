// Package listfilter models the combined filter state of a resource list:
// search text, category, status, and the current page. The state is carried
// entirely in the URL query string so every page render is reproducible from
// the request alone, and browser back/forward restores the exact view.
package listfilter

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/paging"
)

// State is the parsed filter set for one list request.
type State struct {
	Search   string
	Category string
	Status   string
	Page     int
	PageSize int
}

// Parse reads the filter state from the request URL. Missing or invalid
// values take their defaults (empty filters, page 1).
func Parse(r *http.Request) State {
	return State{
		Search:   strings.TrimSpace(query.Get(r, "search")),
		Category: strings.TrimSpace(query.Get(r, "category")),
		Status:   strings.TrimSpace(query.Get(r, "status")),
		Page:     paging.ParsePage(r),
		PageSize: paging.DefaultPageSize,
	}
}

// ApplyFilters returns the state with new filter values and the page reset
// to 1. Changing any filter always restarts at the first page so a narrowed
// result set is never viewed from a page that no longer exists.
func (s State) ApplyFilters(search, category, status string) State {
	s.Search = strings.TrimSpace(search)
	s.Category = strings.TrimSpace(category)
	s.Status = strings.TrimSpace(status)
	s.Page = 1
	return s
}

// ClearFilters returns the state with all filters removed and the page
// reset to 1.
func (s State) ClearFilters() State {
	return State{Page: 1, PageSize: s.PageSize}
}

// GoToPage returns the state positioned at the target page. Filters are
// untouched.
func (s State) GoToPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// Query converts the state into the fetch parameters sent upstream.
func (s State) Query() apiclient.ListQuery {
	return apiclient.ListQuery{
		Search:   s.Search,
		Category: s.Category,
		Status:   s.Status,
		Page:     s.Page,
		PageSize: s.PageSize,
	}
}

// HasFilters reports whether any filter is active (page position is not a
// filter).
func (s State) HasFilters() bool {
	return s.Search != "" || s.Category != "" || s.Status != ""
}

// URL renders the state as a relative URL under basePath. Default values
// are omitted to keep addresses short and stable.
func (s State) URL(basePath string) string {
	v := url.Values{}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Category != "" {
		v.Set("category", s.Category)
	}
	if s.Status != "" {
		v.Set("status", s.Status)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if enc := v.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

// PageURL is a convenience for numbered pagination links.
func (s State) PageURL(basePath string, page int) string {
	return s.GoToPage(page).URL(basePath)
}
