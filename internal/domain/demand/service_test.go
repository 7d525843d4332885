package demand_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/repository"
	"github.com/gestorhq/gestor/internal/repository/mocks"
)

func TestDemandService_Create_Defaults(t *testing.T) {
	ctx := context.Background()

	demandsRepo := &mocks.DemandRepository{}
	demandsRepo.On("Create", ctx, mock.Anything).Return(nil)

	svc := demand.NewService(demandsRepo, nil, nil, nil)
	dem, err := svc.Create(ctx, demand.CreateRequest{
		ProjectID: "p1",
		Title:     "Integrate billing export",
	})
	require.NoError(t, err)
	require.Equal(t, demand.StatusPending, dem.Status)
	require.Equal(t, demand.PriorityMedium, dem.Priority)
}

func TestDemandService_Create_RejectsUnknownStatus(t *testing.T) {
	svc := demand.NewService(&mocks.DemandRepository{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), demand.CreateRequest{
		ProjectID: "p1",
		Title:     "Title",
		Status:    demand.Status("archived"),
	})
	require.ErrorIs(t, err, demand.ErrInvalidStatus)
}

func TestDemandService_LogTime_RollsUpWorkedHours(t *testing.T) {
	ctx := context.Background()

	demandsRepo := &mocks.DemandRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	demandsRepo.On("Get", ctx, "d1").Return(&demand.Demand{
		ID:        "d1",
		ProjectID: "p1",
	}, nil)
	demandsRepo.On("CreateEntry", ctx, mock.Anything).Return(nil)
	projectsRepo.On("AddWorkedHours", ctx, "p1", "c1", 6.5).Return(nil)

	svc := demand.NewService(demandsRepo, projectsRepo, nil, nil)
	entry, err := svc.LogTime(ctx, demand.LogTimeRequest{
		DemandID:     "d1",
		ConsultantID: "c1",
		EntryDate:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Hours:        6.5,
	})
	require.NoError(t, err)
	require.Equal(t, "d1", entry.DemandID)
	require.Equal(t, 6.5, entry.Hours)
	projectsRepo.AssertExpectations(t)
}

func TestDemandService_LogTime_RejectsNonPositiveHours(t *testing.T) {
	svc := demand.NewService(&mocks.DemandRepository{}, nil, nil, nil)
	_, err := svc.LogTime(context.Background(), demand.LogTimeRequest{
		DemandID:     "d1",
		ConsultantID: "c1",
		Hours:        0,
	})
	require.ErrorIs(t, err, demand.ErrInvalidInput)
}

func TestDemandService_LogTime_DemandNotFound(t *testing.T) {
	ctx := context.Background()

	demandsRepo := &mocks.DemandRepository{}
	demandsRepo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := demand.NewService(demandsRepo, nil, nil, nil)
	_, err := svc.LogTime(ctx, demand.LogTimeRequest{
		DemandID:     "missing",
		ConsultantID: "c1",
		Hours:        2,
	})
	require.ErrorIs(t, err, demand.ErrDemandNotFound)
}

func TestDemandService_DeleteEntry_ReversesRollup(t *testing.T) {
	ctx := context.Background()

	demandsRepo := &mocks.DemandRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	demandsRepo.On("GetEntry", ctx, "e1").Return(&demand.TimeEntry{
		ID:           "e1",
		DemandID:     "d1",
		ConsultantID: "c1",
		Hours:        4,
	}, nil)
	demandsRepo.On("Get", ctx, "d1").Return(&demand.Demand{
		ID:        "d1",
		ProjectID: "p1",
	}, nil)
	demandsRepo.On("DeleteEntry", ctx, "e1").Return(nil)
	projectsRepo.On("AddWorkedHours", ctx, "p1", "c1", -4.0).Return(nil)

	svc := demand.NewService(demandsRepo, projectsRepo, nil, nil)
	require.NoError(t, svc.DeleteEntry(ctx, "e1"))
	projectsRepo.AssertExpectations(t)
}

func TestTaskStatuses_OmitAwaitingFeedback(t *testing.T) {
	require.True(t, demand.StatusAwaitingFeedback.Valid())
	require.False(t, demand.StatusAwaitingFeedback.ValidTask())
	require.True(t, demand.StatusInReview.ValidTask())
}
