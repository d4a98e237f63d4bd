package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_Resolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := users.NewMemoryRepository()
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	s := NewIdentityService(nil, &fakeRepoManager{u: repo})

	id, err := s.Resolve(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: u.ID, UserName: "alice", PasswordHash: "h"}, id)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = s.Resolve(ctx, u.ID)
	assert.ErrorIs(t, err, common.ErrIdentityNotFound)
}

func TestIdentityService_StoreError(t *testing.T) {
	t.Parallel()

	s := NewIdentityService(nil, &fakeRepoManager{u: failingUsersRepo{err: errBoom}})
	_, err := s.Resolve(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, common.ErrIdentityNotFound)
}
