package config

import (
	"testing"
	"time"

	"github.com/nm3210/colordescriptors-go/pkg/descriptor"
)

func TestLoad_CustomEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "file:./prod.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ORIGIN", "http://example.com")
	t.Setenv("DEFAULT_INTERPOLATION", "rgbw")
	t.Setenv("DEFAULT_WHITE_ENABLED", "true")
	t.Setenv("MAX_GRADIENT_COLORS", "512")
	t.Setenv("PREVIEW_FRAME_INTERVAL", "20")
	t.Setenv("PREVIEW_BUFFER_SIZE", "8")
	t.Setenv("PRESET_FILE", "./presets.yaml")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Expected Env to be 'production', got '%s'", cfg.Env)
	}
	if cfg.DatabaseURL != "file:./prod.db" {
		t.Errorf("Expected DatabaseURL to be 'file:./prod.db', got '%s'", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.HumanReadableLogs() {
		t.Error("Expected JSON logs when LOG_FORMAT=json")
	}
	if cfg.CORSOrigin != "http://example.com" {
		t.Errorf("Expected CORSOrigin to be 'http://example.com', got '%s'", cfg.CORSOrigin)
	}
	if cfg.DefaultInterpolation != descriptor.InterpolationRGBW {
		t.Errorf("Expected DefaultInterpolation to be RGBW, got %s", cfg.DefaultInterpolation)
	}
	if !cfg.DefaultWhiteEnabled {
		t.Error("Expected DefaultWhiteEnabled to be true")
	}
	if cfg.MaxGradientColors != 512 {
		t.Errorf("Expected MaxGradientColors to be 512, got %d", cfg.MaxGradientColors)
	}
	if cfg.PreviewFrameInterval != 20*time.Millisecond {
		t.Errorf("Expected PreviewFrameInterval to be 20ms, got %v", cfg.PreviewFrameInterval)
	}
	if cfg.PreviewBufferSize != 8 {
		t.Errorf("Expected PreviewBufferSize to be 8, got %d", cfg.PreviewBufferSize)
	}
	if cfg.PresetFile != "./presets.yaml" {
		t.Errorf("Expected PresetFile to be './presets.yaml', got '%s'", cfg.PresetFile)
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"test", false},
		{"", false},
	}

	for _, tt := range tests {
		cfg := &Config{Env: tt.env}
		if cfg.IsDevelopment() != tt.expected {
			t.Errorf("IsDevelopment() for env '%s': expected %v, got %v", tt.env, tt.expected, cfg.IsDevelopment())
		}
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"production", true},
		{"development", false},
		{"test", false},
		{"", false},
	}

	for _, tt := range tests {
		cfg := &Config{Env: tt.env}
		if cfg.IsProduction() != tt.expected {
			t.Errorf("IsProduction() for env '%s': expected %v, got %v", tt.env, tt.expected, cfg.IsProduction())
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	result := getEnv("TEST_VAR", "default")
	if result != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", result)
	}

	result = getEnv("NON_EXISTING_VAR_12345_UNIQUE", "default")
	if result != "default" {
		t.Errorf("Expected 'default', got '%s'", result)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "42")

	result := getEnvInt("TEST_INT_VAR", 10)
	if result != 42 {
		t.Errorf("Expected 42, got %d", result)
	}

	// Invalid ints fall back to the default
	t.Setenv("TEST_INVALID_INT", "not_a_number")

	result = getEnvInt("TEST_INVALID_INT", 10)
	if result != 10 {
		t.Errorf("Expected default 10 for invalid int, got %d", result)
	}

	result = getEnvInt("NON_EXISTING_INT_VAR_12345_UNIQUE", 100)
	if result != 100 {
		t.Errorf("Expected default 100, got %d", result)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"F", false},
		{"garbage", true}, // default
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL_VAR", tt.value)
		if result := getEnvBool("TEST_BOOL_VAR", true); result != tt.expected {
			t.Errorf("getEnvBool(%q): expected %v, got %v", tt.value, tt.expected, result)
		}
	}
}

func TestGetEnvMode(t *testing.T) {
	tests := []struct {
		value    string
		expected descriptor.InterpolationMode
	}{
		{"HSI", descriptor.InterpolationHSI},
		{"rgbw", descriptor.InterpolationRGBW},
		{"lab", descriptor.InterpolationHSI},
		{"", descriptor.InterpolationHSI},
	}

	for _, tt := range tests {
		t.Setenv("TEST_MODE_VAR", tt.value)
		if result := getEnvMode("TEST_MODE_VAR", descriptor.InterpolationHSI); result != tt.expected {
			t.Errorf("getEnvMode(%q): expected %s, got %s", tt.value, tt.expected, result)
		}
	}
}
