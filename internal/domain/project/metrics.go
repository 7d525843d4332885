package project

import "time"

// EndingSoonWindow is how far ahead an end date still counts as ending soon.
const EndingSoonWindow = 7 * 24 * time.Hour

// rawProgress returns the unclamped percentage of the estimate consumed.
// Zero estimates yield zero rather than dividing.
func rawProgress(p *Project) float64 {
	if p.EstimatedHours <= 0 {
		return 0
	}
	return p.WorkedHours / p.EstimatedHours * 100
}

// Progress returns the percentage of estimated hours consumed, clamped to
// [0, 100] for display.
func Progress(p *Project) float64 {
	pct := rawProgress(p)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Revenue is what the channel bills for the hours worked.
func Revenue(p *Project) float64 {
	return p.WorkedHours * p.ChannelRate
}

// Cost sums each assignment's logged hours at its own rate. Legacy
// single-consultant projects fall back to worked hours at the flat rate via
// EffectiveAssignments.
func Cost(p *Project) float64 {
	var total float64
	for _, a := range p.EffectiveAssignments() {
		total += a.HoursLogged * a.HourlyRate
	}
	return total
}

// Profit is revenue minus cost.
func Profit(p *Project) float64 {
	return Revenue(p) - Cost(p)
}

// Margin is profit as a percentage of revenue, zero when there is no revenue.
func Margin(p *Project) float64 {
	rev := Revenue(p)
	if rev == 0 {
		return 0
	}
	return Profit(p) / rev * 100
}

// RemainingHours is the estimate left to burn, never negative.
func RemainingHours(p *Project) float64 {
	if rem := p.EstimatedHours - p.WorkedHours; rem > 0 {
		return rem
	}
	return 0
}

// EstimatedBudget is the full estimate priced at the channel rate.
func EstimatedBudget(p *Project) float64 {
	return p.EstimatedHours * p.ChannelRate
}

// AtRisk flags budget or schedule overruns. A hard budget overrun (past 110%
// of estimate) flags regardless of status; overdue end dates and the soft
// 90% early warning only apply to projects not yet completed.
func AtRisk(p *Project, now time.Time) bool {
	pct := rawProgress(p)
	if pct > 110 {
		return true
	}
	if p.Status == StatusCompleted {
		return false
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(now) {
		return true
	}
	return pct > 90
}

// EndingSoon reports whether the end date falls within the next seven days,
// inclusive. Completed projects and projects already past their end date are
// never ending soon.
func EndingSoon(p *Project, now time.Time) bool {
	if p.Status == StatusCompleted || p.EndDate.IsZero() {
		return false
	}
	if p.EndDate.Before(now) {
		return false
	}
	return !p.EndDate.After(now.Add(EndingSoonWindow))
}
