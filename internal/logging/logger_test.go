package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"stevenson/internal/config"
)

func TestNew_ReleaseWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}

	logger := New(&buf, cfg, "1.2.3", "stevenson")
	logger.Info("hello", "k", "v")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line is not valid JSON: %v (%q)", err, buf.String())
	}
	for key, want := range map[string]string{
		"msg":     "hello",
		"app":     "stevenson",
		"version": "1.2.3",
		"env":     "prod",
		"k":       "v",
	} {
		if got[key] != want {
			t.Errorf("%s = %v; want %q", key, got[key], want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{AppEnv: "prod", LogLevel: slog.LevelWarn}

	logger := New(&buf, cfg, "1.2.3", "stevenson")
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}
}

func TestNew_DevUsesTint(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{AppEnv: "dev", LogLevel: slog.LevelDebug}

	logger := New(&buf, cfg, "dev", "stevenson")
	logger.Debug("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "stevenson") {
		t.Errorf("output = %q; want message and app attribute", out)
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("dev output is JSON; want tint text")
	}
}
