package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cheapamd/camd/pkg/config"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetDefault_TextAndLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	SetDefault(Options{Output: &buf})
	slog.Debug("hidden")
	slog.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info record missing")
	}
}

func TestSetDefault_DebugFlag(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	SetDefault(Options{Debug: true, Output: &buf})
	slog.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug record missing with Debug option")
	}
}

func TestSetDefault_EnvOverride(t *testing.T) {
	restoreDefault(t)
	t.Setenv(config.EnvDebug, "1")
	var buf bytes.Buffer

	SetDefault(Options{Output: &buf})
	slog.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected %s=1 to enable debug logging", config.EnvDebug)
	}
}

func TestSetDefault_JSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	SetDefault(Options{JSON: true, Output: &buf})
	slog.Info("event", "key", "value")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["msg"] != "event" || rec["key"] != "value" {
		t.Errorf("unexpected record: %v", rec)
	}
}
