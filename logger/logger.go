// Package logger builds the logrus logger shared by the command and its
// components.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrBadFormat indicates a log format other than text or json.
var ErrBadFormat = errors.New("logger: unknown format")

// Config selects level and output format. Empty fields fall back to the
// LOG_LEVEL and LOG_FORMAT environment variables, then to info and text.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New returns a logger writing to w (os.Stderr when nil).
func New(cfg Config, w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	if w == nil {
		w = os.Stderr
	}
	l.SetOutput(w)

	lvl := cfg.Level
	if lvl == "" {
		lvl = os.Getenv("LOG_LEVEL")
	}
	if lvl == "" {
		lvl = "info"
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.SetLevel(level)

	format := cfg.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
	return l, nil
}
