package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by GRAPEVINE_ENV (or .env by default).
// All flat config is env vars read via os.Getenv after loading; the
// epistemology tables live in a separate YAML file (see tables.go).
func Load() error {
	envFile := os.Getenv("GRAPEVINE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Load(envFile)

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// TablesPath returns the path of the YAML epistemology tables.
// Empty means compiled-in defaults.
func TablesPath() string {
	return os.Getenv("TABLES_PATH")
}

// SimSeed returns the deterministic seed for town generation and the
// engine's random draws. Defaults to 1 if not set.
func SimSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("SIM_SEED"), 10, 64)
	if err != nil {
		return 1
	}
	return seed
}

// TownSize returns the number of people to generate.
// Defaults to 40 if not set.
func TownSize() int {
	n, err := strconv.Atoi(os.Getenv("TOWN_SIZE"))
	if err != nil || n <= 0 {
		return 40
	}
	return n
}

// StepIntervalMillis returns the wall-clock milliseconds between simulated
// timesteps when the daemon drives the loop itself. Defaults to 1000.
func StepIntervalMillis() int {
	ms, err := strconv.Atoi(os.Getenv("STEP_INTERVAL_MS"))
	if err != nil || ms <= 0 {
		return 1000
	}
	return ms
}

// RateLimitRPS returns requests per second limit for the inspector API.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
