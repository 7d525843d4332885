package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/report"
)

type failingSource struct{}

func (failingSource) Collect(context.Context) (report.Collections, error) {
	return report.Collections{}, errors.New("store unreachable")
}

func fixtureData() report.Collections {
	return report.Collections{
		Projects: []project.Project{
			{ID: "p1", Name: "Alpha", Status: project.StatusInProgress, WorkedHours: 10, ChannelRate: 100, ConsultantRate: 60},
		},
		Demands: []demand.Demand{
			{ID: "d1", ProjectID: "p1"},
		},
		Entries: []demand.TimeEntry{
			{ID: "e1", DemandID: "d1", ConsultantID: "c1", EntryDate: time.Now().AddDate(0, 0, -1), Hours: 10},
		},
		Consultants: []consultant.Consultant{
			{ID: "c1", Name: "Ana"},
		},
	}
}

func TestOverview_ComposesAllShapes(t *testing.T) {
	svc := report.NewService(&report.FixtureSource{Data: fixtureData()}, nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, overview.Portfolio.TotalProjects)
	require.Equal(t, 1000.0, overview.Portfolio.Revenue)
	require.Len(t, overview.TopProfit, 1)
	require.Len(t, overview.TopConsultants, 1)
	require.Equal(t, 10.0, overview.TopConsultants[0].Hours)
	require.Len(t, overview.WeeklyHours, report.DefaultWeeks)
	require.Len(t, overview.MonthlyRevenue, report.DefaultMonths)
}

func TestOverview_FallsBackWhenLiveFails(t *testing.T) {
	svc := report.NewService(failingSource{}, &report.FixtureSource{Data: fixtureData()}, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, overview.Portfolio.TotalProjects)
}

func TestOverview_ErrorsWithoutFallback(t *testing.T) {
	svc := report.NewService(failingSource{}, nil, nil)

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}

func TestOverview_MonthlyRevenueUsesChannelRateThroughDemand(t *testing.T) {
	data := fixtureData()
	svc := report.NewService(&report.FixtureSource{Data: data}, nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	var total float64
	for _, b := range overview.MonthlyRevenue {
		total += b.Value
	}
	// 10 hours at the project's channel rate of 100
	require.Equal(t, 1000.0, total)
}
