package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"TRACE", zerolog.TraceLevel},
		{"info", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"warn", zerolog.WarnLevel},
		{"nonsense", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%s) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	defer func() {
		Logger = zerolog.Nop()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}()

	LogInitWriter("warn", &buf)
	Logger.Info().Msg("hidden message")
	Logger.Warn().Msg("shown message")

	if strings.Contains(buf.String(), "hidden message") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(buf.String(), "shown message") {
		t.Error("warn message missing at warn level")
	}

	SetLogLevel("debug")
	Logger.Debug().Msg("debug after reload")
	if !strings.Contains(buf.String(), "debug after reload") {
		t.Error("SetLogLevel should enable debug output")
	}
}
