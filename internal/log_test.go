package internal

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR": LogLevelError,
		"warn":  LogLevelWarn,
		"Debug": LogLevelDebug,
		"TRACE": LogLevelTrace,
		"":      LogLevelInfo,
		"noisy": LogLevelInfo,
	}
	for input, expected := range tests {
		if got := ParseLogLevel(input); got != expected {
			t.Errorf("ParseLogLevel(%q) = %d, expected %d", input, got, expected)
		}
	}
}

func TestLoggerFiltersByLevelAndTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := NewLogger(LogLevelWarn).With("Materializer")
	logger.Info("hidden")
	logger.Warn("column %s skipped", "Valor")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected INFO line to be filtered at WARN level")
	}
	if !strings.Contains(out, "[WARN] [Materializer] column Valor skipped") {
		t.Errorf("Unexpected log output: %q", out)
	}
}
