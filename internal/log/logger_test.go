package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Config{Level: "debug", Output: &buf})

	logger.Debug().Str("component", "site").Msg("rendered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "rendered" || entry["component"] != "site" || entry["level"] != "debug" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should carry a timestamp")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Config{Level: "warn", Output: &buf})

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	logger.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Error("warn should be written")
	}
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := newLogger(Config{Output: &buf})

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("LOG_LEVEL=warn should filter info, got %q", buf.String())
	}

	buf.Reset()
	logger = newLogger(Config{Level: "debug", Output: &buf})
	logger.Debug().Msg("shown")
	if buf.Len() == 0 {
		t.Error("an explicit level should override LOG_LEVEL")
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Error().Msg("nothing")
}
