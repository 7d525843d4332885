package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestorhq/gestor/internal/domain/demand"
)

// Dashboard defaults observed across the cards and charts.
const (
	DefaultTopN   = 5
	DefaultWeeks  = 8
	DefaultMonths = 6
)

// Overview is everything the dashboard page renders.
type Overview struct {
	Portfolio      PortfolioSummary `json:"portfolio"`
	TopProfit      []ProjectRank    `json:"top_profit"`
	TopHours       []ProjectRank    `json:"top_hours"`
	TopConsultants []ConsultantRank `json:"top_consultants"`
	WeeklyHours    []Bucket         `json:"weekly_hours"`
	MonthlyRevenue []Bucket         `json:"monthly_revenue"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// Service composes the dashboard overview from a Source.
type Service struct {
	source   Source
	fallback Source
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a report service. fallback may be nil; when set, it is
// used after a failed live collect so the dashboard degrades instead of
// erroring.
func NewService(source, fallback Source, logger *slog.Logger) *Service {
	return &Service{
		source:   source,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// Overview collects the raw collections and derives every dashboard shape.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	cols, err := s.source.Collect(ctx)
	if err != nil {
		if s.fallback == nil {
			return Overview{}, fmt.Errorf("collecting dashboard data: %w", err)
		}
		if s.logger != nil {
			s.logger.Warn("live collect failed, serving fallback", "error", err)
		}
		cols, err = s.fallback.Collect(ctx)
		if err != nil {
			return Overview{}, fmt.Errorf("collecting fallback data: %w", err)
		}
	}

	now := s.now()
	return Overview{
		Portfolio:      Portfolio(cols.Projects, now),
		TopProfit:      TopByProfit(cols.Projects, DefaultTopN),
		TopHours:       TopByHours(cols.Projects, DefaultTopN),
		TopConsultants: ConsultantRanking(cols.Entries, cols.Consultants, DefaultTopN),
		WeeklyHours:    WeeklyHours(cols.Entries, now, DefaultWeeks),
		MonthlyRevenue: MonthlyRevenue(cols.Entries, channelRateFor(cols), now, DefaultMonths),
		GeneratedAt:    now,
	}, nil
}

// channelRateFor maps each time entry to the channel rate of its project,
// through the entry's demand. Entries whose demand or project is missing
// contribute zero revenue.
func channelRateFor(cols Collections) func(demand.TimeEntry) float64 {
	projectRates := make(map[string]float64, len(cols.Projects))
	for _, p := range cols.Projects {
		projectRates[p.ID] = p.ChannelRate
	}
	demandProject := make(map[string]string, len(cols.Demands))
	for _, d := range cols.Demands {
		demandProject[d.ID] = d.ProjectID
	}
	return func(e demand.TimeEntry) float64 {
		return projectRates[demandProject[e.DemandID]]
	}
}
