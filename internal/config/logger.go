package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the structured logger used by the commands. The level is
// read from BONK_LOG_LEVEL and falls back to def.
func NewLogger(w io.Writer, prefix string, def log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           def,
	})
	if value := GetEnv("BONK_LOG_LEVEL", ""); value != "" {
		level, err := log.ParseLevel(value)
		if err != nil {
			logger.Warn("ignoring BONK_LOG_LEVEL", "value", value, "err", err)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}
