package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	dbcmd "github.com/slowerai/backend/cli/cmd/db"
	envcmd "github.com/slowerai/backend/cli/cmd/env"
	"github.com/slowerai/backend/cli/cmd/start"
	"github.com/slowerai/backend/pkg/config"
	"github.com/slowerai/backend/pkg/logger"
	"github.com/slowerai/backend/pkg/version"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "users",
		Short:             "Users management API",
		Version:           version.Get().String(),
		SilenceUsage:      true,
		PersistentPreRunE: bootstrap,
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "Path to an optional YAML config file")
	flags.String("env-file", config.DefaultEnvFile, "Path to the .env file")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.Bool("log-source", false, "Include source location in logs")

	root.AddCommand(
		start.NewStartCommand(),
		dbcmd.NewDBCommand(),
		envcmd.NewEnvCommand(),
	)
	return root
}

// bootstrap loads .env, resolves configuration and installs the logger before
// any subcommand runs.
func bootstrap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if _, err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	var sources []config.Source
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		sources = append(sources, config.NewYAMLProvider(path))
	}
	sources = append(sources, config.NewCLIProvider(changedFlags(cmd)))
	cfg, err := config.NewService().Load(ctx, sources...)
	if err != nil {
		return err
	}
	_, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetupLogger(cfg.Runtime.LogLevel, logJSON, logSource)
	ctx = logger.ContextWithLogger(ctx, logger.GetDefault())
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}

// configFlags are the flags that override configuration when set explicitly.
var configFlags = []string{"host", "port", "log-level", "seed"}

func changedFlags(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	for _, name := range configFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		out[name] = cmd.Flags().Lookup(name).Value.String()
	}
	return out
}
