package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerDefaultInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := newLogger(false, "info", false, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	logger.Debug("debug-msg")
	logger.Info("info-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") {
		t.Fatalf("expected debug to be filtered at info level, got %q", out)
	}
	if !strings.Contains(out, "info-msg") {
		t.Fatalf("expected info message, got %q", out)
	}
}

func TestNewLoggerRespectsEnvWhenFlagUnset(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	buf := &bytes.Buffer{}

	logger, err := newLogger(false, "info", false, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Debug("debug-msg")

	if !strings.Contains(buf.String(), "debug-msg") {
		t.Fatalf("expected debug output when LOG_LEVEL=debug, got %q", buf.String())
	}
}

func TestNewLoggerFlagOverridesEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	buf := &bytes.Buffer{}

	logger, err := newLogger(false, "warn", true, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("parsed")
	logger.Warn("no-files")

	out := buf.String()
	if strings.Contains(out, "parsed") {
		t.Fatalf("expected info to be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "no-files") {
		t.Fatalf("expected warn message, got %q", out)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger(false, "loud", true, false, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewLoggerStructured(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := newLogger(true, "info", false, false, buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("build.done", "path", "docs/index.html")
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, "docs/index.html") {
		t.Fatalf("expected JSON log line, got %q", out)
	}
}
