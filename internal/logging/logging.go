// Package logging builds the logrus entry shared by the CLI and the summary orchestration.
package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/daybalance/internal/config"
)

// Component is the value of the "component" field on every entry.
const Component = "daybalance"

// ErrInvalidFormat is returned for an unknown log.format value.
var ErrInvalidFormat = errors.New("log format must be 'text' or 'json'")

// New returns an entry writing to w at the configured level and format.
func New(cfg config.LogConfig, w io.Writer) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "", config.LogFormatText:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case config.LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%w, got %q", ErrInvalidFormat, cfg.Format)
	}

	return logrus.NewEntry(logger).WithField("component", Component), nil
}

// Discard returns an entry that drops everything. Used when no logger is wired.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
