// Package cli wires command-line flags to the refresh loop.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/i474232898/waybar-weather/internal/config"
	"github.com/i474232898/waybar-weather/internal/logger"
	"github.com/i474232898/waybar-weather/internal/output"
	"github.com/i474232898/waybar-weather/internal/render"
	"github.com/i474232898/waybar-weather/internal/scheduler"
	"github.com/i474232898/waybar-weather/internal/weather"
	"github.com/i474232898/waybar-weather/internal/weather/providers"
)

// options holds raw flag values; only flags the user set are applied.
type options struct {
	apiKey      string
	configPath  string
	interval    int
	location    string
	unit        string
	text        bool
	json        bool
	titleFormat string
	textFormat  string
	timeout     string
	logLevel    string
	logFormat   string
}

// ClientFactory builds the weather client for a resolved configuration.
type ClientFactory func(cfg *config.AppConfig) weather.Client

// DefaultClient talks to OpenWeatherMap.
func DefaultClient(cfg *config.AppConfig) weather.Client {
	return providers.NewOpenWeatherProvider(&http.Client{Timeout: cfg.Timeout}, cfg.APIKey)
}

// NewRootCommand builds the waybar-weather command. Output is written to
// stdout; newClient selects the upstream.
func NewRootCommand(stdout io.Writer, newClient ClientFactory) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "waybar-weather",
		Short: "Current weather for a status bar",
		Long: `Fetches the current weather from OpenWeatherMap and prints it as a
waybar custom module: one JSON object (or two text lines) per refresh.

Flags take precedence over the config file, which takes precedence over
the environment (` + config.EnvAPIKey + `, ` + config.EnvLocation + `) and defaults.

Format placeholders:
  ` + strings.Join(render.Tokens, " "),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(opts.values(cmd), opts.configPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			log.WithFields(log.Fields{
				"location": cfg.Location,
				"unit":     cfg.Unit.String(),
				"interval": cfg.Interval.String(),
				"output":   cfg.Output.String(),
			}).Debug("configuration resolved")

			return run(cmd.Context(), cfg, newClient(cfg), stdout)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.apiKey, "api-key", "a", "", "API key to use for the request")
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a JSON config file")
	f.IntVarP(&opts.interval, "interval", "i", 0, "refresh interval in seconds; 0 fetches once and exits")
	f.StringVarP(&opts.location, "location", "l", "", "location to get the weather for")
	f.StringVarP(&opts.unit, "unit", "u", "metric", "unit system: standard (K), metric (°C) or imperial (°F)")
	f.BoolVarP(&opts.text, "text", "t", false, "print output as plain text")
	f.BoolVarP(&opts.json, "json", "j", false, "print output as JSON (default)")
	f.StringVar(&opts.titleFormat, "title-format", "{temperature}", "format of the bar text")
	f.StringVar(&opts.textFormat, "text-format", "{city}", "format of the tooltip")
	f.StringVar(&opts.timeout, "timeout", "10s", "timeout of a single request")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (logs go to stderr)")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	cmd.MarkFlagsMutuallyExclusive("text", "json")

	return cmd
}

// values returns the flag layer, holding only flags set on the command line.
func (o *options) values(cmd *cobra.Command) config.Values {
	var v config.Values
	changed := cmd.Flags().Changed

	if changed("api-key") {
		v.APIKey = &o.apiKey
	}
	if changed("location") {
		v.Location = &o.location
	}
	if changed("unit") {
		v.Units = &o.unit
	}
	if changed("interval") {
		v.Interval = &o.interval
	}
	if changed("title-format") {
		v.TitleFormat = &o.titleFormat
	}
	if changed("text-format") {
		v.TextFormat = &o.textFormat
	}
	if changed("text") {
		v.TextOutput = &o.text
	}
	if changed("json") {
		asText := !o.json
		v.TextOutput = &asText
	}
	if changed("timeout") {
		v.Timeout = &o.timeout
	}
	if changed("log-level") {
		v.LogLevel = &o.logLevel
	}
	if changed("log-format") {
		v.LogFormat = &o.logFormat
	}
	return v
}

func run(ctx context.Context, cfg *config.AppConfig, client weather.Client, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	service := weather.NewService(client, cfg.Location, cfg.Unit)
	sched := scheduler.New(
		service,
		render.New(cfg.Templates),
		output.New(stdout, cfg.Output),
		cfg.Interval,
		cfg.Timeout,
	)
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
