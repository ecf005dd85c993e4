package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	LogCapacity    int      // Max retained log events
	ScanCapacity   int      // Max retained device scans
	StatsInterval  int      // Seconds between host stat broadcasts; 0 disables
	CheckSchedule  string   // Cron expression for automatic CHECK_NOW; empty disables
	AllowedOrigins []string // CORS origins for the dashboard
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, err
	}

	logCap, err := strconv.Atoi(getEnv("LOG_CAPACITY", "1000"))
	if err != nil {
		return nil, err
	}

	scanCap, err := strconv.Atoi(getEnv("SCAN_CAPACITY", "100"))
	if err != nil {
		return nil, err
	}

	statsInterval, err := strconv.Atoi(getEnv("STATS_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		LogCapacity:    logCap,
		ScanCapacity:   scanCap,
		StatsInterval:  statsInterval,
		CheckSchedule:  getEnv("CHECK_SCHEDULE", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
