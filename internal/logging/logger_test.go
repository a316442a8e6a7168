package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"posreport/internal/logging"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("ingest complete", "rows", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "ingest complete" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["rows"] != float64(42) {
		t.Fatalf("rows = %v", entry["rows"])
	}
}

func TestNewConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud", "file", "sales.csv")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "sales.csv") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens")
	logger.With("k", "v").Info("still nothing")
}
