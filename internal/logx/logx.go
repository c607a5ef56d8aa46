package logx

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// New builds the base logger. format is "json" or "console".
func New(out io.Writer, level, format string) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "carsdb").
		Logger().
		Level(ParseLevel(level))
}

func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	lvl, err := zerolog.ParseLevel(value)
	if err != nil || value == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, &logger)
}

// FromContext returns the request logger, or a disabled logger when the
// context carries none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
