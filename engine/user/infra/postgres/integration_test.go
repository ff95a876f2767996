package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	infrapg "github.com/slowerai/backend/engine/infra/postgres"
	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/infra/postgres"
	"github.com/slowerai/backend/engine/user/uc"
)

// startPostgres runs a disposable PostgreSQL container and returns a store on it.
func startPostgres(ctx context.Context, t *testing.T) (*infrapg.Store, *infrapg.Config) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("users"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pgContainer.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	cfg := &infrapg.Config{ConnString: connStr, ApplicationName: "users-integration", MaxConns: 4}
	store, err := infrapg.NewStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	require.NoError(t, infrapg.EnsureSchema(ctx, store.Pool()))
	return store, cfg
}

func TestRepository_AgainstPostgres(t *testing.T) {
	ctx := context.Background()
	store, cfg := startPostgres(ctx, t)
	repo := postgres.NewRepository(store.Pool())
	factory := uc.NewFactory(repo, uc.PageLimits{DefaultPerPage: user.DefaultPerPage, MaxPerPage: user.MaxPerPage})

	inserted, err := infrapg.SeedSampleUsers(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, 5, inserted)

	t.Run("Should be idempotent for schema and seed", func(t *testing.T) {
		require.NoError(t, infrapg.EnsureSchema(ctx, store.Pool()))
		again, err := infrapg.SeedSampleUsers(ctx, repo)
		require.NoError(t, err)
		assert.Zero(t, again)
	})

	t.Run("Should page through users ordered by id", func(t *testing.T) {
		page, err := factory.ListUsers(user.ListParams{Page: 2, PerPage: 2}).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, page.Users, 2)
		assert.Equal(t, "jane_smith", page.Users[0].Username)
		assert.Equal(t, "bob_wilson", page.Users[1].Username)
		assert.Equal(t, user.Pagination{Page: 2, PerPage: 2, Total: 5, Pages: 3, HasNext: true, HasPrev: true}, page.Pagination)
	})

	t.Run("Should search case-insensitively and literally", func(t *testing.T) {
		page, err := factory.ListUsers(user.ListParams{Search: "JoHn"}).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		assert.Equal(t, "john_doe", page.Users[0].Username)

		page, err = factory.ListUsers(user.ListParams{Search: "%"}).Execute(ctx)
		require.NoError(t, err)
		assert.Empty(t, page.Users)

		page, err = factory.ListUsers(user.ListParams{Search: "_"}).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, page.Users, 4)
	})

	t.Run("Should aggregate stats", func(t *testing.T) {
		stats, err := factory.GetStats().Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalUsers)
		assert.Equal(t, int64(5), stats.ActiveUsers)
		assert.Equal(t, map[string]int64{"admin": 1, "user": 3, "moderator": 1}, stats.RoleDistribution)
	})

	t.Run("Should advance updated_at on partial update", func(t *testing.T) {
		before, err := factory.GetUser(4).Execute(ctx)
		require.NoError(t, err)
		name := "Robert Wilson"
		after, err := factory.UpdateUser(4, &uc.UpdateUserInput{FullName: &name}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, name, after.FullName)
		assert.Equal(t, before.Email, after.Email)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
		assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	})

	t.Run("Should resolve conflicts and keep row counts", func(t *testing.T) {
		_, err := factory.CreateUser(&uc.CreateUserInput{
			Username: "admin", Email: "x@example.com", FullName: "X",
		}).Execute(ctx)
		assert.ErrorIs(t, err, user.ErrUsernameExists)

		err = factory.DeleteUser(999).Execute(ctx)
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		total, err := repo.CountUsers(ctx, user.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("Should probe the live database", func(t *testing.T) {
		conn, err := infrapg.Connect(ctx, cfg)
		require.NoError(t, err)
		defer conn.Close(ctx)
		res, err := infrapg.Probe(ctx, conn)
		require.NoError(t, err)
		assert.True(t, res.Connected)
		assert.True(t, res.UsersTableExists)

		created, err := infrapg.CreateDatabaseIfMissing(ctx, conn, "users_scratch")
		require.NoError(t, err)
		assert.True(t, created)
		created, err = infrapg.CreateDatabaseIfMissing(ctx, conn, "users_scratch")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Should export pool statistics", func(t *testing.T) {
		collector := infrapg.NewPoolCollector("users", store.Pool())
		assert.Equal(t, 6, testutil.CollectAndCount(collector))
	})

	t.Run("Should report health", func(t *testing.T) {
		assert.NoError(t, store.HealthCheck(ctx))
	})
}
