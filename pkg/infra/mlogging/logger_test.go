// 指示: miu200521358
package mlogging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, Options{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, Options{Level: "debug", Format: "json", Verbose: []VerboseIndex{VERBOSE_INDEX_FACE}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.IsVerboseEnabled(VERBOSE_INDEX_RIG) {
		t.Fatalf("rig verbose should be disabled")
	}
	logger.Verbose(VERBOSE_INDEX_RIG, "rig line")
	logger.Verbose(VERBOSE_INDEX_FACE, "face line")
	out := buf.String()
	if strings.Contains(out, "rig line") || !strings.Contains(out, "face line") {
		t.Fatalf("verbose filter mismatch: %s", out)
	}
}

func TestNewLoggerRejectsUnknownFormat(t *testing.T) {
	if _, err := NewLogger(nil, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected format error")
	}
	if _, err := NewLogger(nil, Options{Level: "loud"}); err == nil {
		t.Fatalf("expected level error")
	}
}

func TestDefaultLogger(t *testing.T) {
	prev := DefaultLogger()
	t.Cleanup(func() { SetDefaultLogger(prev) })

	logger, err := NewLogger(&bytes.Buffer{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	SetDefaultLogger(logger)
	if DefaultLogger() != logger {
		t.Fatalf("default logger mismatch")
	}
}

func TestParseVerboseIndex(t *testing.T) {
	index, err := ParseVerboseIndex("Face")
	if err != nil || index != VERBOSE_INDEX_FACE {
		t.Fatalf("parse mismatch: got=%v err=%v", index, err)
	}
	if _, err := ParseVerboseIndex("nope"); err == nil {
		t.Fatalf("expected error")
	}
}
