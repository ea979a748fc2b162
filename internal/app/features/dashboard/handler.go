// Package dashboard serves the admin landing page: aggregate counts and
// order charts fetched from the reporting endpoint.
package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	uierrors "github.com/mohandz/mohandz-admin/internal/app/features/errors"
	"github.com/mohandz/mohandz-admin/internal/app/system/session"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
	"github.com/mohandz/mohandz-admin/internal/app/system/viewdata"
)

type Handler struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	render renderer
}

type renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data any)
}

type waffleRenderer struct{}

func (waffleRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

func NewHandler(api *apiclient.Client, sessions *session.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Sessions: sessions, Log: logger, ErrLog: errLog, render: waffleRenderer{}}
}

// SetRenderer overrides template output. Test helper only.
func (h *Handler) SetRenderer(r renderer) { h.render = r }

type statCard struct {
	Label string
	Value int
	Link  string
}

type dashboardData struct {
	viewdata.BaseVM

	Cards []statCard
	// Chart series, JSON-encoded for the inline chart script.
	StatusChartJSON  string
	MonthlyChartJSON string
	HasCharts        bool

	Error string
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard stats")
	defer cancel()

	stats, err := h.API.WithToken(h.Sessions.Token(r)).DashboardStats(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			h.Sessions.ForceLogin(w, r)
			return
		}
		h.ErrLog.LogUpstream(r, "dashboard", err)
		h.render.Render(w, r, "dashboard", dashboardData{
			BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "Dashboard", "/"),
			Error:  apiclient.UserMessage(err),
		})
		return
	}

	statusJSON, _ := json.Marshal(stats.OrdersByStatus)
	monthlyJSON, _ := json.Marshal(stats.OrdersByMonth)

	h.render.Render(w, r, "dashboard", dashboardData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "Dashboard", "/"),
		Cards: []statCard{
			{Label: "Users", Value: stats.Users, Link: "/users"},
			{Label: "Services", Value: stats.Services, Link: "/services"},
			{Label: "Orders", Value: stats.Orders, Link: "/orders"},
			{Label: "Projects", Value: stats.Projects, Link: "/projects"},
		},
		StatusChartJSON:  string(statusJSON),
		MonthlyChartJSON: string(monthlyJSON),
		HasCharts:        len(stats.OrdersByStatus) > 0 || len(stats.OrdersByMonth) > 0,
	})
}
