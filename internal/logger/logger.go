// Package logger configures the process-wide logrus logger. Logs go to
// stderr because stdout belongs to the status bar.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config holds configuration for logger setup.
type Config struct {
	Level  logrus.Level
	Format string // "text" or "json"
	Output io.Writer
}

// Init applies cfg to the standard logrus logger.
func Init(cfg Config) {
	log := logrus.StandardLogger()
	log.SetLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

func init() {
	Init(Config{Level: logrus.InfoLevel, Format: "text"})
}
