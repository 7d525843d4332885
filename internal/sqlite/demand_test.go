package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, name, status) VALUES (?, ?, 'in-progress')`,
		id, "Project "+id)
	require.NoError(t, err)
}

func newDemand(id, projectID string) *demand.Demand {
	now := time.Now().UTC()
	return &demand.Demand{
		ID:             id,
		ProjectID:      projectID,
		Title:          "Demand " + id,
		Status:         demand.StatusPending,
		Priority:       demand.PriorityMedium,
		EstimatedHours: 20,
		CreatedAt:      now,
		ModifiedAt:     now,
	}
}

func TestDemandRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedProject(t, db, "p1")

	repo := NewDemandRepository(db)
	require.NoError(t, repo.Create(ctx, newDemand("d1", "p1")))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, "Demand d1", got.Title)
	require.Equal(t, demand.StatusPending, got.Status)
	require.Equal(t, demand.PriorityMedium, got.Priority)
	require.Equal(t, 0.0, got.LoggedHours)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDemandRepository_CreateRequiresProject(t *testing.T) {
	db := NewTestDB(t)

	repo := NewDemandRepository(db)
	err := repo.Create(context.Background(), newDemand("d1", "missing"))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestDemandRepository_LoggedHoursFromEntries(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedProject(t, db, "p1")
	seedConsultant(t, db, "c1")

	repo := NewDemandRepository(db)
	require.NoError(t, repo.Create(ctx, newDemand("d1", "p1")))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, hours := range []float64{4.0, 2.5} {
		entry := &demand.TimeEntry{
			ID:           "e" + string(rune('1'+i)),
			DemandID:     "d1",
			ConsultantID: "c1",
			EntryDate:    day.AddDate(0, 0, i),
			Hours:        hours,
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, repo.CreateEntry(ctx, entry))
	}

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, 6.5, got.LoggedHours)

	total, err := repo.TotalLoggedHours(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, 6.5, total)

	demands, err := repo.List(ctx, demand.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, demands, 1)
	require.Equal(t, 6.5, demands[0].LoggedHours)
}

func TestDemandRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedProject(t, db, "p1")
	seedProject(t, db, "p2")

	repo := NewDemandRepository(db)

	d1 := newDemand("d1", "p1")
	d1.Priority = demand.PriorityUrgent
	require.NoError(t, repo.Create(ctx, d1))

	d2 := newDemand("d2", "p1")
	d2.Status = demand.StatusCompleted
	require.NoError(t, repo.Create(ctx, d2))

	require.NoError(t, repo.Create(ctx, newDemand("d3", "p2")))

	demands, err := repo.List(ctx, demand.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, demands, 2)

	demands, err = repo.List(ctx, demand.ListOptions{Statuses: []demand.Status{demand.StatusCompleted}})
	require.NoError(t, err)
	require.Len(t, demands, 1)
	require.Equal(t, "d2", demands[0].ID)

	demands, err = repo.List(ctx, demand.ListOptions{Priorities: []demand.Priority{demand.PriorityUrgent}})
	require.NoError(t, err)
	require.Len(t, demands, 1)
	require.Equal(t, "d1", demands[0].ID)
}

func TestDemandRepository_EntryLifecycle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedProject(t, db, "p1")
	seedConsultant(t, db, "c1")
	seedConsultant(t, db, "c2")

	repo := NewDemandRepository(db)
	require.NoError(t, repo.Create(ctx, newDemand("d1", "p1")))

	entry := &demand.TimeEntry{
		ID:           "e1",
		DemandID:     "d1",
		ConsultantID: "c1",
		EntryDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Hours:        4.0,
		Description:  "initial build",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateEntry(ctx, entry))

	got, err := repo.GetEntry(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, "d1", got.DemandID)
	require.Equal(t, 4.0, got.Hours)
	require.Equal(t, "initial build", got.Description)

	entries, err := repo.ListEntries(ctx, demand.EntryListOptions{ConsultantID: "c2"})
	require.NoError(t, err)
	require.Empty(t, entries)

	entries, err = repo.ListEntries(ctx, demand.EntryListOptions{
		DemandID: "d1",
		From:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, repo.DeleteEntry(ctx, "e1"))
	_, err = repo.GetEntry(ctx, "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.DeleteEntry(ctx, "e1"), repository.ErrNotFound)
}
