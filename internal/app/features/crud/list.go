package crud

import (
	"errors"
	"net/http"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/authz"
	"github.com/mohandz/mohandz-admin/internal/app/system/listfilter"
	"github.com/mohandz/mohandz-admin/internal/app/system/paging"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
	"github.com/mohandz/mohandz-admin/internal/app/system/viewdata"
)

type cellVM struct {
	Value string
	Badge bool
}

type rowVM struct {
	ID        string
	Title     string
	Cells     []cellVM
	ViewURL   string
	EditURL   string
	CanEdit   bool
	CanDelete bool
}

type listData struct {
	viewdata.BaseVM

	Key               string
	Singular          string
	Plural            string
	BasePath          string
	SearchPlaceholder string
	CategoryOptions   []Option
	StatusOptions     []Option

	Filters listfilter.State
	Columns []Column
	// ColSpan is the full table width: the data columns plus the
	// trailing actions cell.
	ColSpan int
	Rows    []rowVM

	Pages  paging.Pages
	Window []int
	Range  paging.Range

	// ListURL reproduces the current view; pagination and filter forms
	// derive their targets from it.
	ListURL string

	CanCreate bool
	Error     string
}

type listErrorData struct {
	Message string
}

// ServeList handles GET /{section}.
//
// The filter state lives entirely in the query string, so every render is a
// pure function of the request URL: reloads and back/forward reproduce the
// exact view. HTMX refreshes get just the table region; a failed refresh
// swaps only the error slot so the rows on screen stay intact.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	st := listfilter.Parse(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, h.Desc.Key+" list")
	defer cancel()

	items, pag, err := h.api(r).List(ctx, h.Desc.Resource, st.Query())
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			h.Sessions.ForceLogin(w, r)
			return
		}
		h.ErrLog.LogUpstream(r, h.Desc.Key, err)
		msg := apiclient.UserMessage(err)

		if isHTMX(r) {
			w.Header().Set("HX-Retarget", "#list-error")
			w.Header().Set("HX-Reswap", "innerHTML")
			h.render.RenderSnippet(w, "resource_list_error", listErrorData{Message: msg})
			return
		}

		data := h.buildListData(w, r, st, nil, paging.Pages{})
		data.Error = msg
		h.render.Render(w, r, "resource_list", data)
		return
	}

	pages := paging.New(st.Page, st.PageSize, pag.Total, pag.Pages)
	data := h.buildListData(w, r, st, items, pages)

	if isHTMX(r) {
		h.render.RenderSnippet(w, "resource_rows", data)
		return
	}
	h.render.Render(w, r, "resource_list", data)
}

func (h *Handler) buildListData(w http.ResponseWriter, r *http.Request, st listfilter.State, items []apiclient.Item, pages paging.Pages) listData {
	u, _ := session.CurrentUser(r)
	base := h.Desc.BasePath()

	rows := make([]rowVM, 0, len(items))
	for _, item := range items {
		id := item.ID()
		cells := make([]cellVM, 0, len(h.Desc.Columns))
		for _, col := range h.Desc.Columns {
			cells = append(cells, cellVM{Value: item.Str(col.Field), Badge: col.Badge})
		}
		canManage := u != nil && authz.CanManage(u.Role, h.Desc.Key)
		rows = append(rows, rowVM{
			ID:        id,
			Title:     h.Desc.title(item),
			Cells:     cells,
			ViewURL:   base + "/" + id + "/view",
			EditURL:   base + "/" + id + "/edit",
			CanEdit:   canManage,
			CanDelete: authz.CanDeleteItem(u, h.Desc.Key, id),
		})
	}

	role := ""
	if u != nil {
		role = u.Role
	}

	return listData{
		BaseVM:            viewdata.NewBaseVM(w, r, h.Sessions, h.Desc.Plural, "/dashboard"),
		Key:               h.Desc.Key,
		Singular:          h.Desc.Singular,
		Plural:            h.Desc.Plural,
		BasePath:          base,
		SearchPlaceholder: h.Desc.SearchPlaceholder,
		CategoryOptions:   h.Desc.CategoryOptions,
		StatusOptions:     h.Desc.StatusOptions,
		Filters:           st,
		Columns:           h.Desc.Columns,
		ColSpan:           len(h.Desc.Columns) + 1,
		Rows:              rows,
		Pages:             pages,
		Window:            pages.Window(),
		Range:             pages.Range(len(rows)),
		ListURL:           st.URL(base),
		CanCreate:         authz.CanManage(role, h.Desc.Key),
	}
}
