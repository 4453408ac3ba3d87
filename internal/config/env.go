package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from the first existing .env/.env.local file.
// Existing process environment variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		err := godotenv.Load(envPath)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	return fmt.Errorf("no .env file found")
}

// LogLevelFromEnv returns GAMESHELF_LOG_LEVEL, if set.
func LogLevelFromEnv() string {
	return os.Getenv("GAMESHELF_LOG_LEVEL")
}
