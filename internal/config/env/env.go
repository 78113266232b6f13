package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Dir is where environment specific dotenv files live.
var Dir = filepath.Join("internal", "config", "env")

// LoadEnv loads environment variables from the first dotenv file found for the
// current ENV. Variables already present in the process environment win.
// It returns the path that was loaded, or "" when no file exists.
func LoadEnv() (string, error) {
	name := os.Getenv("ENV")
	if name == "" {
		name = "development"
	}

	locations := []string{
		filepath.Join(Dir, fmt.Sprintf(".env.%s", name)),
		fmt.Sprintf(".env.%s", name),
		".env",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err != nil {
			continue
		}
		if err := godotenv.Load(loc); err != nil {
			return "", fmt.Errorf("error loading env file %s: %w", loc, err)
		}
		return loc, nil
	}

	return "", nil
}
