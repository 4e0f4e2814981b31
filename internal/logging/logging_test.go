package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dslsplit/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("anomalous split", slog.String("word", "a+s+e+b"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "word=a+s+e+b") {
		t.Errorf("expected warn record, got %q", out)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dslsplit.log")
	var buf bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", File: path, MaxSizeMB: 1}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("trained", slog.Int("entries", 42))
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "entries=42") || !strings.Contains(buf.String(), "entries=42") {
		t.Errorf("expected record in both outputs, file=%q stderr=%q", data, buf.String())
	}
}
