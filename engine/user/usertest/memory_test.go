package usertest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
)

func TestMemoryRepo_WithTx(t *testing.T) {
	t.Run("Should roll back rows without reusing ids", func(t *testing.T) {
		ctx := context.Background()
		repo := NewMemoryRepo()
		repo.Seed(user.SampleUsers()[:2]...)
		boom := errors.New("boom")
		err := repo.WithTx(ctx, func(tx uc.Repository) error {
			u := &user.User{Username: "temp", Email: "temp@example.com", FullName: "Temp", Role: "user"}
			require.NoError(t, tx.CreateUser(ctx, u))
			assert.Equal(t, int64(3), u.ID)
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 2, repo.Len())

		next := &user.User{Username: "kept", Email: "kept@example.com", FullName: "Kept", Role: "user"}
		require.NoError(t, repo.CreateUser(ctx, next))
		assert.Equal(t, int64(4), next.ID)
	})

	t.Run("Should return an empty page for a saturated offset", func(t *testing.T) {
		repo := NewMemoryRepo()
		repo.Seed(user.SampleUsers()...)
		users, err := repo.ListUsers(context.Background(), user.ListParams{Page: 92233720368547760, PerPage: 100})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
