package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/slowerai/backend/cli/cmd"
	"github.com/slowerai/backend/engine/infra/postgres"
	userpg "github.com/slowerai/backend/engine/user/infra/postgres"
	"github.com/slowerai/backend/pkg/config"
	"github.com/slowerai/backend/pkg/logger"
)

// NewDBCommand groups database provisioning commands.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database provisioning and checks",
	}
	cmd.AddCommand(newSetupCommand(), newCheckCommand())
	return cmd
}

func newSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database, schema and sample users",
		Long: `Connect to the maintenance database with the DB_* settings, create DB_NAME
when missing, apply the users schema and insert sample users into an empty table.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return Setup(c.Context(), config.FromContext(c.Context()))
		},
	}
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify DATABASE_URL connectivity",
		RunE: func(c *cobra.Command, _ []string) error {
			res, err := Check(c.Context(), config.FromContext(c.Context()))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Database connection successful\nUsers table exists: %t\n", res.UsersTableExists)
			return nil
		},
	}
}

// Setup provisions the database described by the discrete DB_* settings.
func Setup(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)
	target := cmd.ProvisionConfig(cfg)
	if err := withConn(ctx, target.WithDatabase(postgres.MaintenanceDB), func(conn *pgx.Conn) error {
		_, err := postgres.CreateDatabaseIfMissing(ctx, conn, target.DBName)
		return err
	}); err != nil {
		return err
	}
	return withConn(ctx, target, func(conn *pgx.Conn) error {
		if err := postgres.EnsureSchema(ctx, conn); err != nil {
			return err
		}
		log.Info("Schema ready", "db_name", target.DBName)
		if _, err := postgres.SeedSampleUsers(ctx, userpg.NewRepository(conn)); err != nil {
			return err
		}
		log.Info("Database setup completed", "db_name", target.DBName)
		return nil
	})
}

// Check connects through DATABASE_URL and probes the users table.
func Check(ctx context.Context, cfg *config.Config) (*postgres.ProbeResult, error) {
	var res *postgres.ProbeResult
	err := withConn(ctx, *cmd.StoreConfig(cfg), func(conn *pgx.Conn) error {
		var err error
		res, err = postgres.Probe(ctx, conn)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("database check failed: %w", err)
	}
	return res, nil
}

func withConn(ctx context.Context, pg postgres.Config, fn func(*pgx.Conn) error) error {
	conn, err := postgres.Connect(ctx, &pg)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			logger.FromContext(ctx).Warn("Failed to close connection", "error", err)
		}
	}()
	return fn(conn)
}
