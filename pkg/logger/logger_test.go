package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_RespectsLevel(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line leaked at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %s", buf.String())
	}
}

func TestInit_ErrorFileReceivesOnlyErrors(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "error.log")
	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf, ErrorFile: path})

	log.Info().Msg("routine")
	log.Error().Msg("broken")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read error file: %v", err)
	}
	if strings.Contains(string(data), "routine") {
		t.Fatalf("info line written to error file: %s", data)
	}
	if !strings.Contains(string(data), "broken") {
		t.Fatalf("error line missing from error file: %s", data)
	}
	if !strings.Contains(buf.String(), "routine") || !strings.Contains(buf.String(), "broken") {
		t.Fatalf("console output incomplete: %s", buf.String())
	}
}

func TestInit_UnopenableErrorFileFallsBackToConsole(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "missing", "error.log")
	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf, ErrorFile: path})

	if !strings.Contains(buf.String(), "error file unavailable") {
		t.Fatalf("open failure not reported: %s", buf.String())
	}
	log.Error().Msg("still logged")
	if !strings.Contains(buf.String(), "still logged") {
		t.Fatalf("console output lost: %s", buf.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("error file must not exist, stat err: %v", err)
	}
}

func TestGet_ReturnsInitialisedLogger(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "info", Output: &buf})
	l := Get()
	l.Info().Str("component", "tasks").Msg("from get")

	if !strings.Contains(buf.String(), "from get") || !strings.Contains(buf.String(), `"component":"tasks"`) {
		t.Fatalf("Get did not write through the initialised logger: %s", buf.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
