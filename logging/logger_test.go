package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func logLine(t *testing.T, logger zerolog.Logger, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	logger.Info().Msg("test message")
	var fields map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return fields
}

func TestContextHelpers(t *testing.T) {
	tests := []struct {
		name      string
		decorate  func(zerolog.Logger) zerolog.Logger
		wantField string
		wantValue string
	}{
		{
			"component",
			func(l zerolog.Logger) zerolog.Logger { return WithComponent(l, "table") },
			"component", "table",
		},
		{
			"trace id",
			func(l zerolog.Logger) zerolog.Logger { return WithTraceID(l, "abc-123") },
			"trace_id", "abc-123",
		},
		{
			"round id",
			func(l zerolog.Logger) zerolog.Logger { return WithRoundID(l, "round-9") },
			"round_id", "round-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := tt.decorate(zerolog.New(&buf))
			fields := logLine(t, logger, &buf)
			if fields[tt.wantField] != tt.wantValue {
				t.Errorf("expected %s=%s, got %v", tt.wantField, tt.wantValue, fields[tt.wantField])
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
