package config

import (
	"os"
	"strings"
)

// DiagnosticVars are reported at startup and by the env command.
var DiagnosticVars = []string{
	"DATABASE_URL",
	"SECRET_KEY",
	"APP_ENV",
	"LOG_LEVEL",
	"USERS_PER_PAGE",
	"SERVER_HOST",
	"SERVER_PORT",
	"DB_HOST",
	"DB_NAME",
	"DB_USER",
	"DB_PASSWORD",
}

// EnvEntry is one environment variable as shown in diagnostics.
type EnvEntry struct {
	Name  string
	Value string
	Set   bool
}

// Diagnostics captures the masked startup environment.
type Diagnostics struct {
	WorkingDir   string
	EnvFile      string
	EnvFileFound bool
	Vars         []EnvEntry
}

// CollectDiagnostics reads DiagnosticVars through lookup and masks secrets.
func CollectDiagnostics(lookup func(string) (string, bool), envFile string) *Diagnostics {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	d := &Diagnostics{EnvFile: envFile}
	d.WorkingDir, _ = os.Getwd()
	if _, err := os.Stat(envFile); err == nil {
		d.EnvFileFound = true
	}
	for _, name := range DiagnosticVars {
		value, ok := lookup(name)
		entry := EnvEntry{Name: name, Set: ok && value != ""}
		if entry.Set {
			entry.Value = MaskEnvValue(name, value)
		}
		d.Vars = append(d.Vars, entry)
	}
	return d
}

// MaskEnvValue hides credentials. Connection URLs keep only the part after
// the last '@'; secrets and passwords are replaced entirely.
func MaskEnvValue(name, value string) string {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasSuffix(upper, "_URL"):
		if i := strings.LastIndex(value, "@"); i >= 0 {
			return "***@" + value[i+1:]
		}
		return value
	case strings.Contains(upper, "SECRET"), strings.Contains(upper, "PASSWORD"):
		return "***masked***"
	}
	if path := configPathForEnv(name); path != "" && IsSensitiveConfigPath(path) {
		return "***masked***"
	}
	return value
}

func configPathForEnv(name string) string {
	return GenerateEnvToConfigMap()[name]
}
