package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("digest written", "entries", 4, "source", "GitHub")

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Fatalf("missing level in output: %q", out)
	}
	if !strings.Contains(out, "digest written") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "entries=4") || !strings.Contains(out, "source=GitHub") {
		t.Fatalf("missing attrs in output: %q", out)
	}
}

func TestConsoleHandlerGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar)).WithGroup("run")

	logger.Warn("skipping source", "name", "Awesome ComfyUI")

	out := buf.String()
	if !strings.Contains(out, `run.name="Awesome ComfyUI"`) {
		t.Fatalf("expected grouped quoted attr, got %q", out)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, levelVar))

	logger.Error("import failed", "title", "Foo Upscaler")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if record["msg"] != "import failed" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
	if record["level"] != "error" {
		t.Fatalf("unexpected level field: %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts field")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
