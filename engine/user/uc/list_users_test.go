package uc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/engine/user/usertest"
)

var limits = uc.PageLimits{DefaultPerPage: user.DefaultPerPage, MaxPerPage: user.MaxPerPage}

func seededRepo(t *testing.T) *usertest.MemoryRepo {
	t.Helper()
	repo := usertest.NewMemoryRepo()
	repo.Seed(user.SampleUsers()...)
	return repo
}

func TestListUsers_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the second page of two", func(t *testing.T) {
		repo := seededRepo(t)
		page, err := uc.NewListUsers(repo, user.ListParams{Page: 2, PerPage: 2}, limits).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, page.Users, 2)
		assert.Equal(t, "jane_smith", page.Users[0].Username)
		assert.Equal(t, "bob_wilson", page.Users[1].Username)
		assert.Equal(t, user.Pagination{
			Page: 2, PerPage: 2, Total: 5, Pages: 3, HasNext: true, HasPrev: true,
		}, page.Pagination)
	})

	t.Run("Should search across username email and full name", func(t *testing.T) {
		repo := seededRepo(t)
		page, err := uc.NewListUsers(repo, user.ListParams{Search: "JOHN"}, limits).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		assert.Equal(t, "john_doe", page.Users[0].Username)
		assert.Equal(t, int64(1), page.Pagination.Total)
	})

	t.Run("Should combine role and activity filters", func(t *testing.T) {
		repo := seededRepo(t)
		inactive := false
		repo.Seed(user.User{Username: "mod2", Email: "mod2@example.com", FullName: "Mod Two", Role: "moderator"})
		page, err := uc.NewListUsers(repo, user.ListParams{Role: "moderator", IsActive: &inactive}, limits).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		assert.Equal(t, "mod2", page.Users[0].Username)
	})

	t.Run("Should clamp page size and default the page", func(t *testing.T) {
		repo := usertest.NewMemoryRepo()
		for i := range 120 {
			repo.Seed(user.User{
				Username: fmt.Sprintf("u%03d", i),
				Email:    fmt.Sprintf("u%03d@example.com", i),
				FullName: "Bulk",
				Role:     "user",
				IsActive: true,
			})
		}
		page, err := uc.NewListUsers(repo, user.ListParams{Page: -3, PerPage: 500}, limits).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, page.Users, user.MaxPerPage)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, int64(2), page.Pagination.Pages)
		assert.True(t, page.Pagination.HasNext)
		assert.False(t, page.Pagination.HasPrev)
	})

	t.Run("Should return an empty list past the last page", func(t *testing.T) {
		repo := seededRepo(t)
		page, err := uc.NewListUsers(repo, user.ListParams{Page: 9, PerPage: 10}, limits).Execute(ctx)
		require.NoError(t, err)
		assert.NotNil(t, page.Users)
		assert.Empty(t, page.Users)
		assert.Equal(t, int64(5), page.Pagination.Total)
		assert.False(t, page.Pagination.HasNext)
	})

	t.Run("Should wrap storage failures", func(t *testing.T) {
		repo := seededRepo(t)
		repo.FailWith = errors.New("connection reset")
		_, err := uc.NewListUsers(repo, user.ListParams{}, limits).Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count users")
	})
}

func TestGetStats_Execute(t *testing.T) {
	t.Run("Should aggregate totals and roles", func(t *testing.T) {
		repo := seededRepo(t)
		repo.Seed(user.User{Username: "idle", Email: "idle@example.com", FullName: "Idle", Role: "user"})
		stats, err := uc.NewGetStats(repo).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(6), stats.TotalUsers)
		assert.Equal(t, int64(5), stats.ActiveUsers)
		assert.Equal(t, int64(1), stats.InactiveUsers)
		assert.Equal(t, map[string]int64{"admin": 1, "moderator": 1, "user": 4}, stats.RoleDistribution)
	})

	t.Run("Should report zeros for an empty table", func(t *testing.T) {
		stats, err := uc.NewGetStats(usertest.NewMemoryRepo()).Execute(context.Background())
		require.NoError(t, err)
		assert.Zero(t, stats.TotalUsers)
		assert.NotNil(t, stats.RoleDistribution)
		assert.Empty(t, stats.RoleDistribution)
	})
}
