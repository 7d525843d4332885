// Package report reduces already-fetched collections into the summary and
// time-series shapes behind the dashboard's cards and charts.
package report

import (
	"sort"
	"time"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
)

// PortfolioSummary holds portfolio-level totals across all projects.
type PortfolioSummary struct {
	TotalProjects int                    `json:"total_projects"`
	ByStatus      map[project.Status]int `json:"by_status"`
	AtRisk        int                    `json:"at_risk"`
	EndingSoon    int                    `json:"ending_soon"`
	WorkedHours   float64                `json:"worked_hours"`
	Revenue       float64                `json:"revenue"`
	Cost          float64                `json:"cost"`
	Profit        float64                `json:"profit"`
}

// Portfolio reduces projects into portfolio totals in a single pass.
func Portfolio(projects []project.Project, now time.Time) PortfolioSummary {
	summary := PortfolioSummary{
		ByStatus: make(map[project.Status]int),
	}
	for i := range projects {
		p := &projects[i]
		summary.TotalProjects++
		summary.ByStatus[p.Status]++
		if project.AtRisk(p, now) {
			summary.AtRisk++
		}
		if project.EndingSoon(p, now) {
			summary.EndingSoon++
		}
		summary.WorkedHours += p.WorkedHours
		summary.Revenue += project.Revenue(p)
		summary.Cost += project.Cost(p)
		summary.Profit += project.Profit(p)
	}
	return summary
}

// ProjectRank is a project positioned by one metric.
type ProjectRank struct {
	ProjectID string  `json:"project_id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
}

// TopByProfit returns at most n projects ranked by profit, descending.
// Ties keep input order.
func TopByProfit(projects []project.Project, n int) []ProjectRank {
	return topBy(projects, n, func(p *project.Project) float64 { return project.Profit(p) })
}

// TopByHours returns at most n projects ranked by worked hours, descending.
func TopByHours(projects []project.Project, n int) []ProjectRank {
	return topBy(projects, n, func(p *project.Project) float64 { return p.WorkedHours })
}

func topBy(projects []project.Project, n int, metric func(*project.Project) float64) []ProjectRank {
	ranks := make([]ProjectRank, 0, len(projects))
	for i := range projects {
		ranks = append(ranks, ProjectRank{
			ProjectID: projects[i].ID,
			Name:      projects[i].Name,
			Value:     metric(&projects[i]),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Value > ranks[j].Value })
	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// ConsultantRank is a consultant positioned by logged hours.
type ConsultantRank struct {
	ConsultantID string  `json:"consultant_id"`
	Name         string  `json:"name"`
	Hours        float64 `json:"hours"`
}

// ConsultantRanking groups time entries by consultant, sums hours, and
// returns at most n consultants by hours descending. Consultants with no
// logged hours are excluded rather than zero-filled.
func ConsultantRanking(entries []demand.TimeEntry, consultants []consultant.Consultant, n int) []ConsultantRank {
	names := make(map[string]string, len(consultants))
	for _, c := range consultants {
		names[c.ID] = c.Name
	}

	hours := make(map[string]float64)
	var order []string
	for _, e := range entries {
		if _, seen := hours[e.ConsultantID]; !seen {
			order = append(order, e.ConsultantID)
		}
		hours[e.ConsultantID] += e.Hours
	}

	ranks := make([]ConsultantRank, 0, len(order))
	for _, id := range order {
		if hours[id] <= 0 {
			continue
		}
		ranks = append(ranks, ConsultantRank{
			ConsultantID: id,
			Name:         names[id],
			Hours:        hours[id],
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Hours > ranks[j].Hours })
	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}
