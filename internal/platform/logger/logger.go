package logger

import (
	"io"
	"log/slog"
	"strings"

	dErrors "onboarding/pkg/domain-errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a slog logger writing to w. level is a slog level name
// (debug, info, warn, error); format is text or json.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid log level")
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown log format "+format)
	}
}
