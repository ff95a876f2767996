package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when no path is given.
const DefaultEnvFile = ".env"

// LoadDotEnv exports the variables of a dotenv file into the process
// environment without overriding variables that are already set. It reports
// whether the file existed.
func LoadDotEnv(path string) (bool, error) {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return true, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return true, nil
}
