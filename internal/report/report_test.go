package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/report"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestPortfolio_Totals(t *testing.T) {
	projects := []project.Project{
		{
			ID: "p1", Status: project.StatusInProgress,
			EstimatedHours: 40, WorkedHours: 44,
			ChannelRate: 100, ConsultantRate: 60,
			EndDate: now.AddDate(0, 0, -1),
		},
		{
			ID: "p2", Status: project.StatusCompleted,
			EstimatedHours: 20, WorkedHours: 20,
			ChannelRate: 80, ConsultantRate: 50,
		},
		{ID: "p3", Status: project.StatusPlanning},
	}

	summary := report.Portfolio(projects, now)
	require.Equal(t, 3, summary.TotalProjects)
	require.Equal(t, 1, summary.ByStatus[project.StatusInProgress])
	require.Equal(t, 1, summary.ByStatus[project.StatusCompleted])
	require.Equal(t, 1, summary.ByStatus[project.StatusPlanning])
	require.Equal(t, 1, summary.AtRisk) // p1 is overdue
	require.Equal(t, 64.0, summary.WorkedHours)
	require.Equal(t, 44*100.0+20*80.0, summary.Revenue)
	require.Equal(t, 44*60.0+20*50.0, summary.Cost)
	require.Equal(t, summary.Revenue-summary.Cost, summary.Profit)
}

func TestPortfolio_Empty(t *testing.T) {
	summary := report.Portfolio(nil, now)
	require.Equal(t, 0, summary.TotalProjects)
	require.Equal(t, 0.0, summary.Revenue)
}

func TestTopByProfit_RanksAndTruncates(t *testing.T) {
	projects := []project.Project{
		{ID: "a", Name: "A", WorkedHours: 10, ChannelRate: 100, ConsultantRate: 60}, // 400
		{ID: "b", Name: "B", WorkedHours: 10, ChannelRate: 200, ConsultantRate: 60}, // 1400
		{ID: "c", Name: "C", WorkedHours: 10, ChannelRate: 150, ConsultantRate: 60}, // 900
	}

	top := report.TopByProfit(projects, 2)
	require.Len(t, top, 2)
	require.Equal(t, "b", top[0].ProjectID)
	require.Equal(t, 1400.0, top[0].Value)
	require.Equal(t, "c", top[1].ProjectID)
}

func TestTopByHours_StableOnTies(t *testing.T) {
	projects := []project.Project{
		{ID: "a", WorkedHours: 10},
		{ID: "b", WorkedHours: 20},
		{ID: "c", WorkedHours: 10},
		{ID: "d", WorkedHours: 10},
	}

	top := report.TopByHours(projects, 4)
	require.Equal(t, []string{"b", "a", "c", "d"}, []string{
		top[0].ProjectID, top[1].ProjectID, top[2].ProjectID, top[3].ProjectID,
	})
}

func TestConsultantRanking_GroupsAndExcludesZero(t *testing.T) {
	consultants := []consultant.Consultant{
		{ID: "c1", Name: "Ana"},
		{ID: "c2", Name: "Bruno"},
		{ID: "c3", Name: "Carla"},
	}
	entries := []demand.TimeEntry{
		{ConsultantID: "c1", Hours: 8},
		{ConsultantID: "c2", Hours: 6.5},
		{ConsultantID: "c1", Hours: 5},
	}

	ranks := report.ConsultantRanking(entries, consultants, 5)
	require.Len(t, ranks, 2) // c3 never logged hours
	require.Equal(t, "Ana", ranks[0].Name)
	require.Equal(t, 13.0, ranks[0].Hours)
	require.Equal(t, "Bruno", ranks[1].Name)
}

func TestConsultantRanking_TruncatesToN(t *testing.T) {
	var entries []demand.TimeEntry
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		entries = append(entries, demand.TimeEntry{ConsultantID: id, Hours: 1})
	}
	ranks := report.ConsultantRanking(entries, nil, 5)
	require.Len(t, ranks, 5)
}
