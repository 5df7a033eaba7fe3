package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   zerolog.Level
		wantOK bool
	}{
		{"", DefaultLevel, true},
		{"debug", zerolog.DebugLevel, true},
		{"WARN", zerolog.WarnLevel, true},
		{"disabled", zerolog.Disabled, true},
		{"loud", DefaultLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestConfigureLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure("info", &buf)

	logger.Debug().Msg("debug message")
	if strings.Contains(buf.String(), "debug message") {
		t.Error("debug should be filtered at info level")
	}

	logger.Info().Msg("info message")
	if !strings.Contains(buf.String(), `"level":"info"`) || !strings.Contains(buf.String(), "info message") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestConfigureInvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure("loud", &buf)

	if logger.GetLevel() != DefaultLevel {
		t.Errorf("level = %v, want %v", logger.GetLevel(), DefaultLevel)
	}
	if !strings.Contains(buf.String(), "invalid log level") {
		t.Errorf("expected a warning, got %s", buf.String())
	}
}

func TestConfigureDebugAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure("debug", &buf)

	logger.Debug().Msg("hello")
	if !strings.Contains(buf.String(), `"caller"`) {
		t.Errorf("debug output should carry the caller: %s", buf.String())
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(Configure("info", &buf), "dispatcher")

	logger.Info().Msg("ready")
	if !strings.Contains(buf.String(), `"component":"dispatcher"`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontctl.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	logger := Configure("info", f)
	logger.Info().Msg("written")
}
