// Package config provides configuration management for the color descriptor
// server and CLI.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

// Config holds all configuration values.
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration
	DatabaseURL string

	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"

	// CORS configuration
	CORSOrigin string

	// Gradient defaults
	DefaultInterpolation descriptor.InterpolationMode
	DefaultWhiteEnabled  bool
	MaxGradientColors    int // Upper bound on materialized colors per request

	// Preview playback
	PreviewFrameInterval time.Duration
	PreviewBufferSize    int

	// Presets seeded on startup; empty disables seeding
	PresetFile string
}

// Load loads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "4100"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "file:./colors.db"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		// CORS
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		// Gradients
		DefaultInterpolation: getEnvMode("DEFAULT_INTERPOLATION", descriptor.InterpolationHSI),
		DefaultWhiteEnabled:  getEnvBool("DEFAULT_WHITE_ENABLED", false),
		MaxGradientColors:    getEnvInt("MAX_GRADIENT_COLORS", 4096),

		// Preview
		PreviewFrameInterval: time.Duration(getEnvInt("PREVIEW_FRAME_INTERVAL", 50)) * time.Millisecond,
		PreviewBufferSize:    getEnvInt("PREVIEW_BUFFER_SIZE", 64),

		// Presets
		PresetFile: getEnv("PRESET_FILE", ""),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HumanReadableLogs reports whether logs go to the console writer rather
// than as JSON lines.
func (c *Config) HumanReadableLogs() bool {
	return c.LogFormat != "json"
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default value.
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvMode returns the interpolation mode named by an environment variable
// or a default value.
func getEnvMode(key string, defaultValue descriptor.InterpolationMode) descriptor.InterpolationMode {
	if value, exists := os.LookupEnv(key); exists {
		if mode := descriptor.InterpolationMode(strings.ToUpper(value)); mode.Valid() {
			return mode
		}
	}
	return defaultValue
}
