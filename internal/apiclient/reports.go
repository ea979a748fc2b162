package apiclient

import (
	"context"
	"net/http"
)

// Stats is the dashboard overview payload from GET /api/admin/reports/stats.
type Stats struct {
	Users    int `json:"users"`
	Services int `json:"services"`
	Orders   int `json:"orders"`
	Projects int `json:"projects"`

	// OrdersByStatus feeds the status breakdown chart.
	OrdersByStatus map[string]int `json:"ordersByStatus,omitempty"`
	// OrdersByMonth feeds the monthly volume chart, oldest first.
	OrdersByMonth []MonthCount `json:"ordersByMonth,omitempty"`
}

// MonthCount is one point of the monthly orders series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats fetches the aggregate counts and chart series for the
// dashboard landing page.
func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	env, err := c.Do(ctx, http.MethodGet, c.adminURL("reports/stats", nil), nil)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	if err := decodeData(env, &s); err != nil {
		return Stats{}, err
	}
	return s, nil
}
