package start

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/slowerai/backend/cli/cmd"
	envcmd "github.com/slowerai/backend/cli/cmd/env"
	"github.com/slowerai/backend/engine/infra/monitoring"
	"github.com/slowerai/backend/engine/infra/monitoring/metrics"
	"github.com/slowerai/backend/engine/infra/postgres"
	"github.com/slowerai/backend/engine/infra/server"
	userpg "github.com/slowerai/backend/engine/user/infra/postgres"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/pkg/config"
	"github.com/slowerai/backend/pkg/logger"
	"github.com/slowerai/backend/pkg/version"
)

const productionEnvironment = "production"

// NewStartCommand creates the start command for the API server
func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start",
		Aliases: []string{"server"},
		Short:   "Start the users API server",
		Long:    "Open the database, ensure the schema, optionally seed sample users and serve HTTP until interrupted.",
		RunE:    executeStartCommand,
	}
	cmd.Flags().String("host", "", "Host interface to bind")
	cmd.Flags().Int("port", 0, "Port to listen on")
	cmd.Flags().Bool("seed", true, "Insert sample users when the table is empty")
	return cmd
}

func executeStartCommand(cobraCmd *cobra.Command, _ []string) error {
	ctx := cobraCmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)
	log.Info("Starting users server", "version", version.Get().Version, "environment", cfg.Runtime.Environment)
	envFile, _ := cobraCmd.Flags().GetString("env-file")
	envcmd.LogDiagnostics(log, config.CollectDiagnostics(os.LookupEnv, envFile))
	if cfg.Runtime.Environment == productionEnvironment {
		gin.SetMode(gin.ReleaseMode)
	}
	store, err := postgres.NewStore(ctx, cmd.StoreConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}()
	srv, err := buildServer(ctx, cfg, store)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func buildServer(ctx context.Context, cfg *config.Config, store *postgres.Store) (*server.Server, error) {
	if err := postgres.EnsureSchema(ctx, store.Pool()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	repo := userpg.NewRepository(store.Pool())
	if cfg.Database.SeedSampleData {
		if _, err := postgres.SeedSampleUsers(ctx, repo); err != nil {
			return nil, err
		}
	}
	mon, err := monitoring.NewMonitoringService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize monitoring: %w", err)
	}
	if err := mon.Register(postgres.NewPoolCollector(metrics.Namespace, store.Pool())); err != nil {
		return nil, err
	}
	factory := uc.NewFactory(repo, uc.PageLimits{
		DefaultPerPage: cfg.Users.PerPage,
		MaxPerPage:     cfg.Users.MaxPerPage,
	})
	srv, err := server.NewServer(ctx, server.Config{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		Environment:        cfg.Runtime.Environment,
	}, server.Dependencies{
		Health:     store,
		Users:      factory,
		Monitoring: mon,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
