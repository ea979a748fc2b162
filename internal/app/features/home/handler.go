// Package home serves the public marketing pages: the landing page with the
// service and project showcases, rendered without authentication.
package home

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
	"github.com/mohandz/mohandz-admin/internal/app/system/viewdata"
)

// visitedCookie marks returning visitors; the landing page uses it to skip
// the first-visit banner.
const visitedCookie = "mohandz_visited"

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	API *apiclient.Client
	Log *zap.Logger
}

func NewHandler(api *apiclient.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

type showcaseItem struct {
	Title       string
	Description string
	Category    string
	Image       string
}

type homeData struct {
	viewdata.BaseVM
	FirstVisit bool
	Services   []showcaseItem
	Projects   []showcaseItem
}

// ServeRoot handles GET /. The showcases degrade gracefully: a backend
// outage leaves them empty rather than failing the page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	firstVisit := false
	if _, err := r.Cookie(visitedCookie); err != nil {
		firstVisit = true
		http.SetCookie(w, &http.Cookie{
			Name:     visitedCookie,
			Value:    "1",
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "home showcases")
	defer cancel()

	data := homeData{
		BaseVM:     viewdata.NewBaseVM(w, r, nil, "Welcome", "/"),
		FirstVisit: firstVisit,
		Services:   h.showcase(ctx, "services", 6),
		Projects:   h.showcase(ctx, "projects", 6),
	}

	templates.Render(w, r, "home", data)
}

func (h *Handler) showcase(ctx context.Context, resource string, limit int) []showcaseItem {
	items, err := h.API.PublicList(ctx, resource, limit)
	if err != nil {
		h.Log.Warn("showcase fetch failed", zap.String("resource", resource), zap.Error(err))
		return nil
	}
	out := make([]showcaseItem, 0, len(items))
	for _, it := range items {
		out = append(out, showcaseItem{
			Title:       it.Str("title"),
			Description: it.Str("description"),
			Category:    it.Str("category"),
			Image:       it.Str("image"),
		})
	}
	return out
}
