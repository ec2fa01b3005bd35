package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ModeStrings, cfg.Mode)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"ok reassemble", func(c *Config) { c.Mode = ModeReassemble; c.MatchTransform = "upper" }, nil},
		{"bad mode", func(c *Config) { c.Mode = "replace" }, ErrValidationFailed},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, ErrValidationFailed},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrValidationFailed},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = Duration(-time.Second) }, ErrValidationFailed},
		{"unknown transform", func(c *Config) { c.GapTransform = "shout" }, ErrValidationFailed},
		{"script transform without script", func(c *Config) { c.MatchTransform = "lua:shout" }, ErrScriptRequired},
		{"script transform", func(c *Config) { c.MatchTransform = "lua:shout"; c.Script = "t.lua" }, nil},
		{"preview transform", func(c *Config) { c.Mode = ModeTransform; c.Output.Preview = true }, ErrValidationFailed},
		{"preview ranges", func(c *Config) { c.Mode = ModeRanges; c.Output.Preview = true }, nil},
		{"preview with watch", func(c *Config) { c.Output.Preview = true; c.Watch.Enabled = true }, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "rangescan.toml", `
query = "foo"
mode = "reassemble"
match_transform = "capitalize"
gap_transform = "upper"
script_timeout = "2s"

[output]
format = "json"
pretty = true

[watch]
enabled = true
debounce = "250ms"

[log]
level = "debug"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "foo", cfg.Query)
	assert.Equal(t, ModeReassemble, cfg.Mode)
	assert.Equal(t, "capitalize", cfg.MatchTransform)
	assert.Equal(t, "upper", cfg.GapTransform)
	assert.Equal(t, 2*time.Second, cfg.ScriptTimeout.Std())
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "rangescan.yaml", `
query: bar
invert: true
output:
  format: json
watch:
  debounce: 1s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "bar", cfg.Query)
	assert.True(t, cfg.Invert)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, time.Second, cfg.Watch.Debounce.Std())
	// Untouched settings keep their defaults.
	assert.Equal(t, ModeStrings, cfg.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFileEmptyYAML(t *testing.T) {
	cfg, err := LoadFile(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFile(writeFile(t, "config.json", `{}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(writeFile(t, "bad.toml", "query = \n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Positive(t, perr.Line)
	assert.Contains(t, perr.Error(), "bad.toml")

	_, err = LoadFile(writeFile(t, "unknown.toml", `qurey = "typo"`))
	assert.True(t, errors.As(err, &perr), "got %v", err)

	_, err = LoadFile(writeFile(t, "unknown.yaml", "qurey: typo\n"))
	assert.True(t, errors.As(err, &perr), "got %v", err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RANGESCAN_QUERY":           "foo",
		"RANGESCAN_MODE":            "transform",
		"RANGESCAN_INVERT":          "yes",
		"RANGESCAN_MATCH_TRANSFORM": "upper",
		"RANGESCAN_OUTPUT_PRETTY":   "1",
		"RANGESCAN_OUTPUT_PREVIEW":  "on",
		"RANGESCAN_WATCH_DEBOUNCE":  "50ms",
		"RANGESCAN_LOG_LEVEL":       "error",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnvFunc(&cfg, lookup))

	assert.Equal(t, "foo", cfg.Query)
	assert.Equal(t, ModeTransform, cfg.Mode)
	assert.True(t, cfg.Invert)
	assert.Equal(t, "upper", cfg.MatchTransform)
	assert.True(t, cfg.Output.Pretty)
	assert.True(t, cfg.Output.Preview)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce.Std())
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, FormatText, cfg.Output.Format)
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := ApplyEnvFunc(&cfg, func(name string) (string, bool) {
		if name == "RANGESCAN_WATCH" {
			return "sometimes", true
		}
		return "", false
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RANGESCAN_WATCH")
}

func TestApplyEnvOS(t *testing.T) {
	t.Setenv("RANGESCAN_QUERY", "from-env")
	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, "from-env", cfg.Query)
	assert.Contains(t, EnvVars(), "RANGESCAN_QUERY")
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
