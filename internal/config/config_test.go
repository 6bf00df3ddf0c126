package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/waybar-weather/internal/output"
	"github.com/i474232898/waybar-weather/internal/weather"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvLocation, "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve(Values{APIKey: ptr("key"), Location: ptr("Berlin")}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Unit != weather.Metric {
		t.Errorf("expected metric, got %v", cfg.Unit)
	}
	if cfg.Interval != 0 {
		t.Errorf("expected zero interval, got %v", cfg.Interval)
	}
	if cfg.Output != output.JSON {
		t.Errorf("expected json output, got %v", cfg.Output)
	}
	if cfg.Templates.Primary != "{temperature}" || cfg.Templates.Secondary != "{city}" {
		t.Errorf("unexpected templates %+v", cfg.Templates)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout)
	}
	if cfg.LogLevel != log.InfoLevel {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestResolvePrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvLocation, "Env City")

	path := writeConfig(t, `{
		"api_key": "file-key",
		"units": "imperial",
		"interval": 600,
		"title_format": "{weatherIcon} {temperature}",
		"out_format": true
	}`)

	cfg, err := Resolve(Values{Units: ptr("Standard"), Interval: ptr(30)}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "file-key" {
		t.Errorf("expected file to win over env, got %q", cfg.APIKey)
	}
	if cfg.Location != "Env City" {
		t.Errorf("expected env to fill location, got %q", cfg.Location)
	}
	if cfg.Unit != weather.Standard {
		t.Errorf("expected flag to win over file, got %v", cfg.Unit)
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("expected flag interval 30s, got %v", cfg.Interval)
	}
	if cfg.Templates.Primary != "{weatherIcon} {temperature}" {
		t.Errorf("expected file title format, got %q", cfg.Templates.Primary)
	}
	if cfg.Templates.Secondary != "{city}" {
		t.Errorf("expected default text format, got %q", cfg.Templates.Secondary)
	}
	if cfg.Output != output.Text {
		t.Errorf("expected text output from file, got %v", cfg.Output)
	}
}

func TestResolveMissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := Resolve(Values{}, "")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "API key") || !strings.Contains(err.Error(), "location") {
		t.Fatalf("expected both missing fields to be reported, got %v", err)
	}
}

func TestBuildRejectsInvalidValues(t *testing.T) {
	base := Merge(Defaults(), Values{APIKey: ptr("k"), Location: ptr("l")})

	tests := []struct {
		name  string
		layer Values
	}{
		{"unknown unit", Values{Units: ptr("kelvin")}},
		{"negative interval", Values{Interval: ptr(-5)}},
		{"bad timeout", Values{Timeout: ptr("soon")}},
		{"zero timeout", Values{Timeout: ptr("0s")}},
		{"bad log level", Values{LogLevel: ptr("loud")}},
		{"bad log format", Values{LogFormat: ptr("xml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Merge(base, tt.layer))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := writeConfig(t, `{"api_key": `)
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected an error for malformed json")
	}
}

func TestMergeKeepsExplicitEmptyValues(t *testing.T) {
	merged := Merge(Defaults(), Values{TextFormat: ptr("")})
	if merged.TextFormat == nil || *merged.TextFormat != "" {
		t.Fatalf("expected explicit empty text format to override default, got %v", merged.TextFormat)
	}
}
