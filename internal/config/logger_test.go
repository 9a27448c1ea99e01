package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("BONK_LOG_LEVEL", "debug")
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", log.WarnLevel)
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want debug", logger.GetLevel())
	}
	logger.Debug("spawn", "slot", 1)
	if !strings.Contains(buf.String(), "spawn") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestNewLoggerBadLevelKeepsDefault(t *testing.T) {
	t.Setenv("BONK_LOG_LEVEL", "loud")
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", log.InfoLevel)
	if logger.GetLevel() != log.InfoLevel {
		t.Fatalf("level = %v, want info", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "BONK_LOG_LEVEL") {
		t.Fatalf("no warning about the bad level: %q", buf.String())
	}
}
