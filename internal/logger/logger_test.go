package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesLogDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}

	Warn("task reload failed", "user", "u1")
	Error("remote unavailable")
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantWarn  bool
	}{
		{"default is warn", Config{}, false, true},
		{"explicit info", Config{Level: "info"}, false, true},
		{"explicit error", Config{Level: "error"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}

			Debug("debug line")
			Warn("warn line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "chatty", Output: &buf}); err == nil {
		t.Error("Init() should reject an unknown level")
	}
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	With("component", "taskstore").Warn("load failed")
	if !strings.Contains(buf.String(), "component=taskstore") {
		t.Errorf("output %q missing component field", buf.String())
	}
	if !strings.Contains(buf.String(), "estudai") {
		t.Errorf("output %q missing prefix", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	if With("k", "v") != nil {
		t.Error("With() should be nil before Init")
	}
}
