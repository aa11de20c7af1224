package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/omsctl/internal/errors"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(Config{
		Level:       level,
		Format:      format,
		Output:      NewOutput(buf),
		ServiceName: "omsctl",
	}), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("expected warn and error output: %s", out)
	}
}

func TestLogger_JSONCarriesService(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.Info("api.request", "path", "attendance/")

	entry := decodeLine(t, buf)
	if entry["service"] != "omsctl" {
		t.Errorf("expected service attr, got %v", entry["service"])
	}
	if entry["path"] != "attendance/" {
		t.Errorf("expected path attr, got %v", entry["path"])
	}
}

func TestLogger_WithError(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatJSON)
		err := errors.Wrap(errors.ErrCodeAPIUnreachable, "backend down", fmt.Errorf("connection refused"))

		logger.WithError(fmt.Errorf("wrapped: %w", err)).Warn("request failed")

		entry := decodeLine(t, buf)
		if entry["error_code"] != "API-002" {
			t.Errorf("expected error_code API-002, got %v", entry["error_code"])
		}
		if entry["cause"] != "connection refused" {
			t.Errorf("expected cause, got %v", entry["cause"])
		}
	})

	t.Run("plain error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatJSON)
		logger.WithError(fmt.Errorf("boom")).Warn("failed")

		entry := decodeLine(t, buf)
		if entry["error"] != "boom" {
			t.Errorf("expected error attr, got %v", entry["error"])
		}
		if _, ok := entry["error_code"]; ok {
			t.Error("plain errors should not carry a code")
		}
	})

	t.Run("nil error", func(t *testing.T) {
		logger, _ := newBufferLogger(LevelDebug, FormatJSON)
		if logger.WithError(nil) != logger {
			t.Error("WithError(nil) should return the same logger")
		}
	})
}

func TestLogger_LogError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.LogError(context.Background(), "command failed", errors.NewNotLoggedInError())

	entry := decodeLine(t, buf)
	if entry["msg"] != "command failed" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if _, ok := entry["suggestions"]; !ok {
		t.Error("expected suggestions for coded error")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("nothing")
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("nop logger should not enable debug")
	}
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omsctl.log")
	cfg := DefaultConfig()
	cfg.Output = OutputFile(path, DefaultFileOptions())

	logger := New(cfg)
	logger.Warn("written to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := map[string]Level{
		"debug": LevelDebug, "DEBUG": LevelDebug, "warning": LevelWarn,
		"error": LevelError, "": LevelInfo, "verbose": LevelInfo,
	}
	for in, want := range levels {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if ParseFormat("JSON") != FormatJSON || ParseFormat("text") != FormatText || ParseFormat("xml") != FormatText {
		t.Error("ParseFormat mismatch")
	}
	if FormatJSON.String() != "json" || FormatText.String() != "text" {
		t.Error("Format.String mismatch")
	}
}

func TestLogger_RedactsTokens(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.Debug("api.request", "authorization", "Bearer opaque-token-123", "path", "/users/profile/")

	entry := decodeLine(t, buf)
	if got := entry["authorization"]; got != "Bearer ***REDACTED***" {
		t.Errorf("authorization = %v, want it redacted", got)
	}
	if got := entry["path"]; got != "/users/profile/" {
		t.Errorf("path = %v, want it untouched", got)
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	text, err := LevelWarn.MarshalText()
	if err != nil || string(text) != "warn" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}

	var l Level
	if err := l.UnmarshalText([]byte("ERROR")); err != nil || l != LevelError {
		t.Errorf("UnmarshalText(ERROR) = %v, %v", l, err)
	}
}
