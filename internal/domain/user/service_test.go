package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/repository"
	"github.com/gestorhq/gestor/internal/repository/mocks"
)

func TestRoleRanking(t *testing.T) {
	require.True(t, user.RoleMasterAdmin.AtLeast(user.RoleAdmin))
	require.True(t, user.RoleAdmin.AtLeast(user.RoleAdmin))
	require.True(t, user.RoleAdmin.AtLeast(user.RoleConsultant))
	require.True(t, user.RoleConsultant.AtLeast(user.RoleView))
	require.False(t, user.RoleView.AtLeast(user.RoleConsultant))
	require.False(t, user.RoleConsultant.AtLeast(user.RoleAdmin))

	require.False(t, user.Role("superuser").Valid())
}

func TestCreate_DefaultsToViewRole(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Role == user.RoleView && u.Active && u.ID != ""
	})).Return(nil)

	u, err := svc.Create(context.Background(), user.CreateRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.Equal(t, user.RoleView, u.Role)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	svc := user.NewService(new(mocks.UserRepository), nil)

	_, err := svc.Create(context.Background(), user.CreateRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  "superuser",
	})
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestCreateAPIKey_StoresOnlyHash(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo, nil)

	repo.On("Get", mock.Anything, "u1").Return(&user.User{ID: "u1", Active: true}, nil)

	var storedHash string
	repo.On("AddKey", mock.Anything, "u1", mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return len(hash) == 64
	})).Return(nil)

	key, err := svc.CreateAPIKey(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, key, 64)
	require.NotEqual(t, key, storedHash)
	require.Equal(t, user.HashKey(key), storedHash)
	repo.AssertExpectations(t)
}

func TestResolveKey(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo, nil)

	active := &user.User{ID: "u1", Role: user.RoleAdmin, Active: true}
	repo.On("GetByKeyHash", mock.Anything, user.HashKey("good-key")).Return(active, nil)
	repo.On("GetByKeyHash", mock.Anything, user.HashKey("bad-key")).Return(nil, repository.ErrNotFound)

	u, err := svc.ResolveKey(context.Background(), "good-key")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)

	_, err = svc.ResolveKey(context.Background(), "bad-key")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestResolveKey_InactiveUserRejected(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo, nil)

	inactive := &user.User{ID: "u1", Role: user.RoleAdmin, Active: false}
	repo.On("GetByKeyHash", mock.Anything, mock.Anything).Return(inactive, nil)

	_, err := svc.ResolveKey(context.Background(), "stale-key")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
