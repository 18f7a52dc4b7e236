// Package config reads settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// Load reads the given .env files (".env" when none are named) into the environment.
// Variables already set are not overridden and missing files are skipped.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of key, or fallback if it is unset or malformed.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("ignoring malformed integer", "key", key, "value", value)
		return fallback
	}
	return n
}

// GetEnvDuration returns the duration value of key (e.g. "15s"), or fallback if it is unset or malformed.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("ignoring malformed duration", "key", key, "value", value)
		return fallback
	}
	return d
}

// GetLogLevel returns the log level named by key, or fallback.
func GetLogLevel(key string, fallback log.Level) log.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		log.Warn("ignoring unknown log level", "key", key, "value", value)
		return fallback
	}
	return level
}

// GetColorProfile returns the terminal colour profile named by key
// ("truecolor", "256", "16" or "ascii"), or fallback.
func GetColorProfile(key string, fallback termenv.Profile) termenv.Profile {
	switch GetEnv(key, "") {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "256", "ansi256":
		return termenv.ANSI256
	case "16", "ansi":
		return termenv.ANSI
	case "ascii", "none":
		return termenv.Ascii
	}
	return fallback
}
