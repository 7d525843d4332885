package report

import (
	"time"

	"github.com/gestorhq/gestor/internal/domain/demand"
)

// Bucket is one fixed time window of a chart series. Boundaries are
// half-open: an entry belongs to the bucket when Start <= date < End.
// Buckets with no matching entries are still emitted with a zero value so
// chart axes stay stable.
type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// WeeklyHours sums logged hours into the trailing count of seven-day
// buckets, the last of which ends at the start of tomorrow so today's
// entries are included.
func WeeklyHours(entries []demand.TimeEntry, now time.Time, count int) []Bucket {
	if count <= 0 {
		return nil
	}

	year, month, day := now.Date()
	end := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	buckets := make([]Bucket, count)
	for i := count - 1; i >= 0; i-- {
		start := end.AddDate(0, 0, -7)
		buckets[i] = Bucket{
			Start: start,
			End:   end,
			Label: start.Format("Jan 02"),
		}
		end = start
	}

	fill(buckets, entries, func(e demand.TimeEntry) float64 { return e.Hours })
	return buckets
}

// MonthlyRevenue sums per-entry revenue into the trailing count of calendar
// months, ending with the month containing now. The caller supplies the
// billing rate applicable to each entry, typically the channel rate of the
// entry's project.
func MonthlyRevenue(entries []demand.TimeEntry, rateFor func(demand.TimeEntry) float64, now time.Time, count int) []Bucket {
	if count <= 0 {
		return nil
	}

	year, month, _ := now.Date()
	end := time.Date(year, month, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)

	buckets := make([]Bucket, count)
	for i := count - 1; i >= 0; i-- {
		start := end.AddDate(0, -1, 0)
		buckets[i] = Bucket{
			Start: start,
			End:   end,
			Label: start.Format("2006-01"),
		}
		end = start
	}

	fill(buckets, entries, func(e demand.TimeEntry) float64 { return e.Hours * rateFor(e) })
	return buckets
}

func fill(buckets []Bucket, entries []demand.TimeEntry, value func(demand.TimeEntry) float64) {
	for _, e := range entries {
		for i := range buckets {
			if !e.EntryDate.Before(buckets[i].Start) && e.EntryDate.Before(buckets[i].End) {
				buckets[i].Value += value(e)
				break
			}
		}
	}
}
