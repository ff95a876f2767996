package env

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/slowerai/backend/pkg/config"
	"github.com/slowerai/backend/pkg/logger"
)

// NewEnvCommand prints the masked startup environment.
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show environment diagnostics",
		Long:  "Print the environment variables the service reads, masking credentials.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, err := cmd.Flags().GetString("env-file")
			if err != nil {
				return fmt.Errorf("failed to get env-file flag: %w", err)
			}
			return WriteDiagnostics(cmd.OutOrStdout(), config.CollectDiagnostics(os.LookupEnv, envFile))
		},
	}
}

// WriteDiagnostics renders d for humans.
func WriteDiagnostics(w io.Writer, d *config.Diagnostics) error {
	status := "not found"
	if d.EnvFileFound {
		status = "found"
	}
	if _, err := fmt.Fprintf(w, "Working directory: %s\nEnv file: %s (%s)\n", d.WorkingDir, d.EnvFile, status); err != nil {
		return err
	}
	for _, e := range d.Vars {
		value := "NOT SET"
		if e.Set {
			value = e.Value
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", e.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// LogDiagnostics writes d to the logger, one line per variable.
func LogDiagnostics(log logger.Logger, d *config.Diagnostics) {
	log.Info("Startup environment", "cwd", d.WorkingDir, "env_file", d.EnvFile, "env_file_found", d.EnvFileFound)
	for _, e := range d.Vars {
		if !e.Set {
			log.Warn("Environment variable not set", "name", e.Name)
			continue
		}
		log.Debug("Environment variable", "name", e.Name, "value", e.Value)
	}
}
