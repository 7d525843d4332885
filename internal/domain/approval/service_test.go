package approval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/repository"
	"github.com/gestorhq/gestor/internal/repository/mocks"
)

func TestValidateTransition(t *testing.T) {
	reason := "hours don't match the demand"

	require.NoError(t, approval.ValidateTransition(approval.StatusPending, approval.StatusApproved, nil))
	require.NoError(t, approval.ValidateTransition(approval.StatusPending, approval.StatusRejected, &reason))
	require.NoError(t, approval.ValidateTransition(approval.StatusApproved, approval.StatusPaid, nil))

	require.ErrorIs(t,
		approval.ValidateTransition(approval.StatusPending, approval.StatusRejected, nil),
		approval.ErrMissingReason)
	require.ErrorIs(t,
		approval.ValidateTransition(approval.StatusPaid, approval.StatusPending, nil),
		approval.ErrInvalidTransition)
	require.ErrorIs(t,
		approval.ValidateTransition(approval.StatusRejected, approval.StatusApproved, nil),
		approval.ErrInvalidTransition)
	require.ErrorIs(t,
		approval.ValidateTransition(approval.StatusPending, approval.StatusPaid, nil),
		approval.ErrInvalidTransition)
}

func TestApprovalService_Submit_PricesAtConsultantRate(t *testing.T) {
	ctx := context.Background()

	approvalsRepo := &mocks.ApprovalRepository{}
	demandsRepo := &mocks.DemandRepository{}
	consultantsRepo := &mocks.ConsultantRepository{}

	demandsRepo.On("GetEntry", ctx, "e1").Return(&demand.TimeEntry{
		ID:           "e1",
		DemandID:     "d1",
		ConsultantID: "c1",
		Hours:        6.5,
	}, nil)
	consultantsRepo.On("Get", ctx, "c1").Return(&consultant.Consultant{
		ID:         "c1",
		HourlyRate: 60,
	}, nil)
	approvalsRepo.On("Create", ctx, mock.Anything).Return(nil)

	svc := approval.NewService(approvalsRepo, demandsRepo, consultantsRepo, nil, nil)
	appr, err := svc.Submit(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, approval.StatusPending, appr.Status)
	require.Equal(t, 6.5*60.0, appr.Amount)
	require.Equal(t, "c1", appr.ConsultantID)
}

func TestApprovalService_Submit_EntryNotFound(t *testing.T) {
	ctx := context.Background()

	approvalsRepo := &mocks.ApprovalRepository{}
	demandsRepo := &mocks.DemandRepository{}
	consultantsRepo := &mocks.ConsultantRepository{}

	demandsRepo.On("GetEntry", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := approval.NewService(approvalsRepo, demandsRepo, consultantsRepo, nil, nil)
	_, err := svc.Submit(ctx, "missing")
	require.ErrorIs(t, err, demand.ErrEntryNotFound)
}

func TestApprovalService_BulkReview_Approve(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a1", "a2", "a3"}

	approvalsRepo := &mocks.ApprovalRepository{}
	approvalsRepo.On("TransitionBulk", ctx, ids, approval.StatusPending, approval.StatusApproved,
		(*string)(nil), "admin1", mock.Anything).Return(nil)

	svc := approval.NewService(approvalsRepo, nil, nil, nil, nil)
	err := svc.BulkReview(ctx, approval.ReviewRequest{
		IDs:        ids,
		Approve:    true,
		ReviewerID: "admin1",
	})
	require.NoError(t, err)
	approvalsRepo.AssertExpectations(t)
}

func TestApprovalService_BulkReview_RejectWithoutReason(t *testing.T) {
	svc := approval.NewService(&mocks.ApprovalRepository{}, nil, nil, nil, nil)
	err := svc.BulkReview(context.Background(), approval.ReviewRequest{
		IDs:        []string{"a1"},
		Approve:    false,
		ReviewerID: "admin1",
	})
	require.ErrorIs(t, err, approval.ErrMissingReason)
}

func TestApprovalService_BulkReview_ConflictRollsBack(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a1", "a2"}

	approvalsRepo := &mocks.ApprovalRepository{}
	approvalsRepo.On("TransitionBulk", ctx, ids, approval.StatusPending, approval.StatusApproved,
		(*string)(nil), "admin1", mock.Anything).Return(repository.ErrConflict)

	svc := approval.NewService(approvalsRepo, nil, nil, nil, nil)
	err := svc.BulkReview(ctx, approval.ReviewRequest{
		IDs:        ids,
		Approve:    true,
		ReviewerID: "admin1",
	})
	require.ErrorIs(t, err, approval.ErrBulkConflict)
}

func TestApprovalService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a1"}

	approvalsRepo := &mocks.ApprovalRepository{}
	approvalsRepo.On("TransitionBulk", ctx, ids, approval.StatusApproved, approval.StatusPaid,
		(*string)(nil), "admin1", mock.Anything).Return(nil)

	svc := approval.NewService(approvalsRepo, nil, nil, nil, nil)
	require.NoError(t, svc.MarkPaid(ctx, ids, "admin1"))
	approvalsRepo.AssertExpectations(t)
}

func TestApprovalService_BulkReview_EmptyInput(t *testing.T) {
	svc := approval.NewService(&mocks.ApprovalRepository{}, nil, nil, nil, nil)
	err := svc.BulkReview(context.Background(), approval.ReviewRequest{ReviewerID: "admin1"})
	require.ErrorIs(t, err, approval.ErrInvalidInput)
}
