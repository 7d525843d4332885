package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/report"
)

func TestWeeklyHours_ZeroFillsEmptyBuckets(t *testing.T) {
	entries := []demand.TimeEntry{
		{EntryDate: now.AddDate(0, 0, -2), Hours: 8},
		{EntryDate: now.AddDate(0, 0, -3), Hours: 4},
	}

	buckets := report.WeeklyHours(entries, now, 8)
	require.Len(t, buckets, 8)
	require.Equal(t, 12.0, buckets[7].Value)
	for _, b := range buckets[:7] {
		require.Equal(t, 0.0, b.Value)
	}
}

func TestWeeklyHours_IncludesToday(t *testing.T) {
	entries := []demand.TimeEntry{{EntryDate: now, Hours: 3}}
	buckets := report.WeeklyHours(entries, now, 2)
	require.Len(t, buckets, 2)
	require.Equal(t, 3.0, buckets[1].Value)
}

func TestWeeklyHours_HalfOpenBoundaries(t *testing.T) {
	buckets := report.WeeklyHours(nil, now, 2)
	// an entry exactly at a boundary lands in the later bucket
	entries := []demand.TimeEntry{{EntryDate: buckets[1].Start, Hours: 1}}
	got := report.WeeklyHours(entries, now, 2)
	require.Equal(t, 0.0, got[0].Value)
	require.Equal(t, 1.0, got[1].Value)
}

func TestWeeklyHours_IgnoresOutOfRange(t *testing.T) {
	entries := []demand.TimeEntry{
		{EntryDate: now.AddDate(-1, 0, 0), Hours: 100},
		{EntryDate: now.AddDate(0, 0, 10), Hours: 100},
	}
	buckets := report.WeeklyHours(entries, now, 4)
	for _, b := range buckets {
		require.Equal(t, 0.0, b.Value)
	}
}

func TestMonthlyRevenue_SixMonthsWithSingleActiveMonth(t *testing.T) {
	// entries only in the third month of a six month window
	entryDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []demand.TimeEntry{
		{DemandID: "d1", EntryDate: entryDate, Hours: 10},
		{DemandID: "d1", EntryDate: entryDate.AddDate(0, 0, 5), Hours: 5},
	}
	rateFor := func(e demand.TimeEntry) float64 { return 100 }

	buckets := report.MonthlyRevenue(entries, rateFor, now, 6)
	require.Len(t, buckets, 6)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	require.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}, labels)

	for i, b := range buckets {
		if i == 2 {
			require.Equal(t, 1500.0, b.Value)
		} else {
			require.Equal(t, 0.0, b.Value)
		}
	}
}

func TestBuckets_ZeroCount(t *testing.T) {
	require.Nil(t, report.WeeklyHours(nil, now, 0))
	require.Nil(t, report.MonthlyRevenue(nil, nil, now, 0))
}
