package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitJSONLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: FormatJSON, Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hidden")
	Warn().Str("domain", "ecommerce").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["domain"] != "ecommerce" {
		t.Errorf("domain = %v, want ecommerce", entry["domain"])
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "loud", Format: FormatJSON, Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("hidden")
	Info().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug event written at fallback level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info event missing at fallback level")
	}
}

func TestPretty(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{FormatPretty, true},
		{FormatJSON, false},
		{FormatAuto, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			// A buffer is never a terminal.
			if got := pretty(tt.format, &bytes.Buffer{}); got != tt.want {
				t.Errorf("pretty(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: FormatJSON, Output: &buf})
	defer Init(DefaultConfig())

	l := With("module", "bigdata", "domain", "exchange")
	l.Info().Msg("populated")

	out := buf.String()
	for _, want := range []string{`"module":"bigdata"`, `"domain":"exchange"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}
