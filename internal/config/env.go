package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvDataDir    = "NCRIT_DATA_DIR"
	EnvAbundances = "NCRIT_ABUNDANCES"
	EnvDebug      = "NCRIT_DEBUG"
	EnvWorkers    = "NCRIT_WORKERS"
)

// LoadEnv loads files (default ".env") into the process environment.
// Variables already set are kept. The error is godotenv's, typically a
// missing file, and is safe to ignore.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	return defaultValue
}
