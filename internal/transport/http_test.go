package transport_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/testserver"
)

func doRequest(t *testing.T, ts *testserver.TestServer, key, method, path string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, buf)
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthNeedsNoAuth(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresAuth(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp := doRequest(t, ts, "", http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProjectLifecycle(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{
		"name":            "Website Redesign",
		"status":          "in-progress",
		"channel_rate":    110,
		"estimated_hours": 40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	decodeInto(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "in-progress", created.Status)

	resp = doRequest(t, ts, ts.Key, http.MethodGet, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodPut, "/api/projects/"+created.ID, map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Status string `json:"status"`
	}
	decodeInto(t, resp, &updated)
	require.Equal(t, "completed", updated.Status)

	resp = doRequest(t, ts, ts.Key, http.MethodDelete, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodGet, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectValidationErrors(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{
		"name":   "Bad Status",
		"status": "archived",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectSearchFilter(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	for _, name := range []string{"Tech Solutions Portal", "FinanCorp Ledger", "DataX Pipeline"} {
		resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, ts, ts.Key, http.MethodGet, "/api/projects?q=tech", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var projects []struct {
		Name string `json:"name"`
	}
	decodeInto(t, resp, &projects)
	require.Len(t, projects, 1)
	require.Equal(t, "Tech Solutions Portal", projects[0].Name)
}

func TestViewRoleIsReadOnly(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)
	_, viewKey := ts.AddUser(t, "Viewer", user.RoleView)

	resp := doRequest(t, ts, viewKey, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, ts, viewKey, http.MethodPost, "/api/projects", map[string]any{"name": "Nope"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestChannelMutationsRequireAdmin(t *testing.T) {
	ts := testserver.New(t, user.RoleConsultant)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/channels", map[string]any{
		"name":          "Acme Partner",
		"type":          "partner",
		"timesheet_day": 25,
		"invoice_day":   1,
		"payment_day":   10,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, adminKey := ts.AddUser(t, "Admin", user.RoleAdmin)
	resp = doRequest(t, ts, adminKey, http.MethodPost, "/api/channels", map[string]any{
		"name":          "Acme Partner",
		"type":          "partner",
		"timesheet_day": 25,
		"invoice_day":   1,
		"payment_day":   10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestChannelCycleDayValidation(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/channels", map[string]any{
		"name":          "Broken",
		"type":          "direct",
		"timesheet_day": 0,
		"invoice_day":   1,
		"payment_day":   10,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApprovalReviewFlow(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/consultants", map[string]any{
		"name":        "Ana",
		"hourly_rate": 60,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cons struct {
		ID string `json:"id"`
	}
	decodeInto(t, resp, &cons)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{"name": "Portal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var proj struct {
		ID string `json:"id"`
	}
	decodeInto(t, resp, &proj)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/demands", map[string]any{
		"project_id": proj.ID,
		"title":      "Login page",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var dem struct {
		ID string `json:"id"`
	}
	decodeInto(t, resp, &dem)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/time-entries", map[string]any{
		"demand_id":     dem.ID,
		"consultant_id": cons.ID,
		"entry_date":    "2026-03-02T00:00:00Z",
		"hours":         6.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry struct {
		ID string `json:"id"`
	}
	decodeInto(t, resp, &entry)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/approvals", map[string]any{
		"time_entry_id": entry.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var appr struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
		Status string  `json:"status"`
	}
	decodeInto(t, resp, &appr)
	require.Equal(t, 390.0, appr.Amount)
	require.Equal(t, "pending", appr.Status)

	// Reject without a reason is refused
	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/approvals/review", map[string]any{
		"ids":     []string{appr.ID},
		"approve": false,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/approvals/review", map[string]any{
		"ids":     []string{appr.ID},
		"approve": true,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodPost, "/api/approvals/paid", map[string]any{
		"ids": []string{appr.ID},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, ts.Key, http.MethodGet, "/api/approvals/"+appr.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var final struct {
		Status     string  `json:"status"`
		ReviewedBy *string `json:"reviewed_by"`
	}
	decodeInto(t, resp, &final)
	require.Equal(t, "paid", final.Status)
	require.NotNil(t, final.ReviewedBy)
	require.Equal(t, ts.UserID, *final.ReviewedBy)
}

func TestApprovalReviewRequiresAdmin(t *testing.T) {
	ts := testserver.New(t, user.RoleConsultant)

	resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/approvals/review", map[string]any{
		"ids":     []string{"a1"},
		"approve": true,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	ts := testserver.New(t, user.RoleAdmin)

	for i := 0; i < 3; i++ {
		resp := doRequest(t, ts, ts.Key, http.MethodPost, "/api/projects", map[string]any{
			"name":            fmt.Sprintf("Project %d", i),
			"status":          "in-progress",
			"channel_rate":    100,
			"estimated_hours": 50,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, ts, ts.Key, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview struct {
		Portfolio struct {
			TotalProjects int            `json:"total_projects"`
			ByStatus      map[string]int `json:"by_status"`
		} `json:"portfolio"`
		WeeklyHours    []any `json:"weekly_hours"`
		MonthlyRevenue []any `json:"monthly_revenue"`
	}
	decodeInto(t, resp, &overview)
	require.Equal(t, 3, overview.Portfolio.TotalProjects)
	require.Equal(t, 3, overview.Portfolio.ByStatus["in-progress"])
	require.Len(t, overview.WeeklyHours, 8)
	require.Len(t, overview.MonthlyRevenue, 6)
}
