package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/waybar-weather/internal/output"
	"github.com/i474232898/waybar-weather/internal/render"
	"github.com/i474232898/waybar-weather/internal/weather"
)

// Environment variables consulted below the config file.
const (
	EnvAPIKey   = "OPENWEATHER_API_KEY"
	EnvLocation = "WEATHER_LOCATION"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// AppConfig is the resolved, validated configuration of one run.
type AppConfig struct {
	APIKey   string
	Location string
	Unit     weather.UnitSystem

	// Interval between cycles; zero runs a single cycle.
	Interval time.Duration

	Templates render.Templates
	Output    output.Mode

	// Timeout bounds a single upstream request.
	Timeout time.Duration

	LogLevel  log.Level
	LogFormat string
}

// Values is one layer of settings. Nil fields are unset and fall through
// to the next layer. The JSON keys match the config file format.
type Values struct {
	APIKey      *string `json:"api_key"`
	Location    *string `json:"location"`
	Units       *string `json:"units"`
	Interval    *int    `json:"interval"`
	TitleFormat *string `json:"title_format"`
	TextFormat  *string `json:"text_format"`
	TextOutput  *bool   `json:"out_format"`
	Timeout     *string `json:"timeout"`
	LogLevel    *string `json:"log_level"`
	LogFormat   *string `json:"log_format"`
}

// settings is the merged view that is validated before conversion.
type settings struct {
	APIKey      string `validate:"required"`
	Location    string `validate:"required"`
	Units       string `validate:"oneof=standard metric imperial"`
	Interval    int    `validate:"gte=0"`
	TitleFormat string
	TextFormat  string
	TextOutput  bool
	Timeout     string `validate:"required"`
	LogLevel    string `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat   string `validate:"oneof=text json"`
}

// Defaults returns the built-in bottom layer.
func Defaults() Values {
	return Values{
		Units:       ptr("metric"),
		Interval:    ptr(0),
		TitleFormat: ptr("{temperature}"),
		TextFormat:  ptr("{city}"),
		TextOutput:  ptr(false),
		Timeout:     ptr("10s"),
		LogLevel:    ptr("info"),
		LogFormat:   ptr("text"),
	}
}

// Resolve merges flags over the config file at path (optional) over the
// environment over Defaults, then validates the result.
func Resolve(flags Values, path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var file Values
	if path != "" {
		var err error
		file, err = ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	merged := Merge(Defaults(), FromEnv(), file, flags)
	return Build(merged)
}

// ReadFile decodes a JSON config file.
func ReadFile(path string) (Values, error) {
	var v Values
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return v, nil
}

// FromEnv reads the environment layer.
func FromEnv() Values {
	var v Values
	if s := os.Getenv(EnvAPIKey); s != "" {
		v.APIKey = ptr(s)
	}
	if s := os.Getenv(EnvLocation); s != "" {
		v.Location = ptr(s)
	}
	return v
}

// Merge overlays layers from lowest to highest precedence.
func Merge(layers ...Values) Values {
	var out Values
	for _, l := range layers {
		overlay(&out.APIKey, l.APIKey)
		overlay(&out.Location, l.Location)
		overlay(&out.Units, l.Units)
		overlay(&out.Interval, l.Interval)
		overlay(&out.TitleFormat, l.TitleFormat)
		overlay(&out.TextFormat, l.TextFormat)
		overlay(&out.TextOutput, l.TextOutput)
		overlay(&out.Timeout, l.Timeout)
		overlay(&out.LogLevel, l.LogLevel)
		overlay(&out.LogFormat, l.LogFormat)
	}
	return out
}

// Build validates merged values and converts them into an AppConfig.
func Build(v Values) (*AppConfig, error) {
	s := settings{
		APIKey:      strings.TrimSpace(deref(v.APIKey)),
		Location:    strings.TrimSpace(deref(v.Location)),
		Units:       strings.ToLower(strings.TrimSpace(deref(v.Units))),
		Interval:    deref(v.Interval),
		TitleFormat: deref(v.TitleFormat),
		TextFormat:  deref(v.TextFormat),
		TextOutput:  deref(v.TextOutput),
		Timeout:     deref(v.Timeout),
		LogLevel:    strings.ToLower(strings.TrimSpace(deref(v.LogLevel))),
		LogFormat:   strings.ToLower(strings.TrimSpace(deref(v.LogFormat))),
	}

	if err := validate.Struct(s); err != nil {
		return nil, describe(err)
	}

	unit, err := weather.ParseUnitSystem(s.Units)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be a positive duration, got %q", ErrInvalid, s.Timeout)
	}

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	mode := output.JSON
	if s.TextOutput {
		mode = output.Text
	}

	return &AppConfig{
		APIKey:   s.APIKey,
		Location: s.Location,
		Unit:     unit,
		Interval: time.Duration(s.Interval) * time.Second,
		Templates: render.Templates{
			Primary:   s.TitleFormat,
			Secondary: s.TextFormat,
		},
		Output:    mode,
		Timeout:   timeout,
		LogLevel:  level,
		LogFormat: s.LogFormat,
	}, nil
}

// describe turns validator errors into messages a user can act on.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "APIKey":
			msgs = append(msgs, "please provide an API key (--api-key, api_key or "+EnvAPIKey+")")
		case "Location":
			msgs = append(msgs, "please provide a location (--location, location or "+EnvLocation+")")
		case "Timeout":
			msgs = append(msgs, "timeout must not be empty")
		case "Interval":
			msgs = append(msgs, fmt.Sprintf("interval must be zero or positive, got %v", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", strings.ToLower(fe.Field()), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func overlay[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
