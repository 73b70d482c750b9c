package utils

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

func init() {
	// Safe default before InitLogger is called.
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// InitLogger initialises the global logger. Call once at startup.
func InitLogger(cfg LogConfig) {
	initOnce.Do(func() {
		var w io.Writer = os.Stdout
		if cfg.Pretty {
			w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		}
		logger = zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	})
}

// L returns the global logger.
func L() *zerolog.Logger {
	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
