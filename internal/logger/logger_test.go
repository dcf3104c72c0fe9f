package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info", "json")

	log.Info().Str("file", "a.json").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"file":"a.json"`) {
		t.Errorf("Expected JSON field in output, got: %s", output)
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tt.level, "json")
			if log.GetLevel() != tt.expected {
				t.Errorf("level %q: got %v, want %v", tt.level, log.GetLevel(), tt.expected)
			}
		})
	}
}

func TestNewWithWriter_BelowLevelIsDropped(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn", "console")

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below level, got: %s", buf.String())
	}

	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected console output, got: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf, "info", "json")
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger, got level %v", log.GetLevel())
	}
}
