package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/infogrid/catalog-backend/internal/config"
)

// ServiceName tags every log record.
const ServiceName = "catalog-backend"

const redacted = "[redacted]"

// contactKeys are the owner and user attributes masked by LogConfig.RedactContacts.
var contactKeys = map[string]bool{"email": true, "phone": true}

// NewLogger builds the process logger for one binary (server, seeder, migrate)
// and installs it as the slog default. Records go to stderr and carry the
// service name, the component and the version.
func NewLogger(cfg config.LogConfig, component string) *slog.Logger {
	logger := newLogger(os.Stderr, cfg, component)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig, component string) *slog.Logger {
	return slog.New(newHandler(w, cfg)).With(
		slog.String("service", ServiceName),
		slog.String("component", component),
		slog.String("version", Version),
	)
}

// newHandler picks JSON or text output. Text output is for development and
// includes the source position.
func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}
	if cfg.RedactContacts {
		opts.ReplaceAttr = redactContacts
	}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func redactContacts(_ []string, a slog.Attr) slog.Attr {
	if contactKeys[a.Key] && a.Value.Kind() == slog.KindString && a.Value.String() != "" {
		return slog.String(a.Key, redacted)
	}
	return a
}

// parseLevel accepts the slog level names (with offsets such as "warn+2")
// and "warning". Anything else is info.
func parseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
