package logging

import (
	"testing"
)

// TestInitLogger verifies initialization across levels and formats.
func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{"debug json", LevelDebug, FormatJSON},
		{"info text", LevelInfo, FormatText},
		{"warn json", LevelWarn, FormatJSON},
		{"error text", LevelError, FormatText},
		{"unknown level", Level(99), FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if GetLogger() == nil {
				t.Error("GetLogger returned nil after InitLogger")
			}
		})
	}
}

// TestParseLevel verifies level name mapping.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestHelpersDoNotPanic exercises the event helpers.
func TestHelpersDoNotPanic(t *testing.T) {
	InitLogger(LevelError, FormatText) // keep test output quiet

	Debug("debug", "k", "v")
	Info("info")
	Warn("warn")
	Error("error")

	RunStarted("run-1", "in.docx", 4)
	PartProcessed("word/document.xml", "document", 12)
	RunCompleted("run-1", "out.docx", 3, 42, 0)
	RunFailed("run-1", "in.docx", errTest)
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test error" }
