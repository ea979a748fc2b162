// Package paging computes numbered-page navigation for backend-paginated
// lists. The backend reports total/pages with every fetch; this package
// turns that into prev/next flags, a bounded page-number window, and a
// "showing X to Y of Z" range for the list footer.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of rows shown in paged lists.
const DefaultPageSize = 10

// WindowSize is the maximum number of numbered page links shown at once.
const WindowSize = 5

// Pages holds the pagination state for one rendered list. Page is 1-based.
// It is recomputed from the backend's totals on every fetch and never
// cached across filter changes.
type Pages struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// New builds Pages from the backend-reported totals, clamping the current
// page into the valid range. An empty result set yields TotalPages 0 and
// Page pinned to 1.
func New(page, pageSize, total, totalPages int) Pages {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalPages < 0 {
		totalPages = 0
	}
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return Pages{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// ParsePage extracts the 1-based "page" query parameter. Absent or invalid
// values fall back to 1.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// HasPrev reports whether a previous page exists.
func (p Pages) HasPrev() bool { return p.TotalPages > 0 && p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pages) HasNext() bool { return p.TotalPages > 0 && p.Page < p.TotalPages }

// Prev returns the previous page number, clamped to 1.
func (p Pages) Prev() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// Next returns the next page number, clamped to the last page.
func (p Pages) Next() int {
	if p.TotalPages > 0 && p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}

// GoTo returns the target page if it lies within 1..TotalPages, else the
// current page. Out-of-range navigation is a no-op, not an error.
func (p Pages) GoTo(target int) int {
	if target < 1 || p.TotalPages == 0 || target > p.TotalPages {
		return p.Page
	}
	return target
}

// Window returns the page numbers to render as direct links: at most
// WindowSize consecutive numbers centered on the current page, clamped to
// the first and last page. Empty result sets get no window at all.
func (p Pages) Window() []int {
	if p.TotalPages == 0 {
		return nil
	}

	start := p.Page - WindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + WindowSize - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - WindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}

// Range holds the 1-based display range for the list footer.
type Range struct {
	Start int
	End   int
	Total int
}

// Range computes the "showing Start to End of Total" values. An empty page
// yields all zeros so templates can render an explicit empty state.
func (p Pages) Range(shown int) Range {
	if shown == 0 || p.Total == 0 {
		return Range{}
	}
	start := (p.Page-1)*p.PageSize + 1
	return Range{Start: start, End: start + shown - 1, Total: p.Total}
}
