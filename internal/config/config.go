// Package config reads runtime settings from the environment and optional .env files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/joho/godotenv"
)

// Config holds the application configuration read from the environment.
type Config struct {
	// Logging
	LogLevel contracts.LogLevel
	LogFile  string // Empty logs to stderr.

	// Parsing
	GrandStaff bool

	// Gameplay
	TrainingRepetitions int
	ChordsIndividually  bool
	WaitForRelease      bool
	ChordSettle         time.Duration

	// Outer surfaces
	ServeAddr   string
	ExportTempo float64
}

// LoadDotEnv loads variables from the given files, ".env" when none are named. Variables
// already set in the environment win. A missing default file is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if len(files) == 0 && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the configuration. Unset or unparseable values fall back to their defaults.
func Load() *Config {
	return &Config{
		LogLevel:            getLogLevel("SIGHTREADIA_LOG_LEVEL", contracts.InfoLevel),
		LogFile:             getEnv("SIGHTREADIA_LOG_FILE", ""),
		GrandStaff:          getBool("SIGHTREADIA_GRAND_STAFF", true),
		TrainingRepetitions: getInt("SIGHTREADIA_TRAINING_REPETITIONS", 2),
		ChordsIndividually:  getBool("SIGHTREADIA_CHORDS_INDIVIDUALLY", false),
		WaitForRelease:      getBool("SIGHTREADIA_WAIT_FOR_RELEASE", true),
		ChordSettle:         getDuration("SIGHTREADIA_CHORD_SETTLE", 60*time.Millisecond),
		ServeAddr:           getEnv("SIGHTREADIA_SERVE_ADDR", ":8080"),
		ExportTempo:         getFloat("SIGHTREADIA_EXPORT_TEMPO", 120),
	}
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}

func getLogLevel(key string, defaultValue contracts.LogLevel) contracts.LogLevel {
	if level, ok := contracts.ParseLogLevel(getEnv(key, "")); ok {
		return level
	}
	return defaultValue
}
