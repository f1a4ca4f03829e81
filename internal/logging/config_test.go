package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"off":     zerolog.Disabled,
		"trace":   zerolog.TraceLevel,
		"error":   zerolog.ErrorLevel,
		"warning": zerolog.WarnLevel,
	}
	for raw, want := range tests {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("%q: got %v ok=%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("unknown level accepted")
	}
	if _, ok := ParseLevel(""); ok {
		t.Fatalf("empty level accepted")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:     "error",
		EnvLogTimestamp: "false",
		EnvLogNoColor:   "true",
	}
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg, func(k string) string { return env[k] })
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	cfg = DefaultConfig(ProfileTest)
	ApplyEnvOverrides(&cfg, func(string) string { return "garbage" })
	if cfg.Level != zerolog.DebugLevel || cfg.Timestamp {
		t.Fatalf("invalid overrides changed config: %+v", cfg)
	}
}

func TestNewTagsApp(t *testing.T) {
	var out bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &out}, "symd")
	logger.Info().Msg("ready")
	logger.Debug().Msg("hidden")
	s := out.String()
	if !strings.Contains(s, "app=symd") || !strings.Contains(s, "ready") {
		t.Fatalf("unexpected output: %q", s)
	}
	if strings.Contains(s, "hidden") {
		t.Fatalf("debug line written at info level: %q", s)
	}
}

func TestConfigLevelYieldsToEnv(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	lvl, ok := ConfigLevel("debug", getenv)
	if !ok || lvl != zerolog.DebugLevel {
		t.Fatalf("config level without env: got %v ok=%v", lvl, ok)
	}

	env[EnvLogLevel] = "error"
	if _, ok := ConfigLevel("info", getenv); ok {
		t.Fatalf("config level overrode %s", EnvLogLevel)
	}

	env[EnvLogLevel] = "bogus"
	lvl, ok = ConfigLevel("warn", getenv)
	if !ok || lvl != zerolog.WarnLevel {
		t.Fatalf("invalid env should leave config level: got %v ok=%v", lvl, ok)
	}

	if _, ok := ConfigLevel("", func(string) string { return "" }); ok {
		t.Fatalf("empty config level applied")
	}
}
