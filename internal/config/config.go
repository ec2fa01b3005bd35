package config

import (
	"fmt"
	"slices"
	"time"

	"gopkg.in/validator.v2"

	"github.com/dshills/rangescan/internal/transform"
)

// Run modes.
const (
	ModeRanges     = "ranges"
	ModeStrings    = "strings"
	ModeTransform  = "transform"
	ModeReassemble = "reassemble"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the full configuration of a rangescan run.
type Config struct {
	// Query is the literal string to search for.
	Query string `toml:"query" yaml:"query"`

	// Mode selects the operation: ranges, strings, transform or reassemble.
	Mode string `toml:"mode" yaml:"mode" validate:"regexp=^(ranges|strings|transform|reassemble)$"`

	// Invert scans the gaps between matches instead of the matches.
	// Only used by the ranges and strings modes.
	Invert bool `toml:"invert" yaml:"invert"`

	// MatchTransform names the transform applied to matches.
	MatchTransform string `toml:"match_transform" yaml:"match_transform"`

	// GapTransform names the transform applied to the text between matches.
	GapTransform string `toml:"gap_transform" yaml:"gap_transform"`

	// Script is a Lua file defining lua:<name> transforms.
	Script string `toml:"script" yaml:"script"`

	// ScriptTimeout bounds each Lua transform call.
	ScriptTimeout Duration `toml:"script_timeout" yaml:"script_timeout" validate:"min=0"`

	Output OutputConfig `toml:"output" yaml:"output"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	// Format is text or json.
	Format string `toml:"format" yaml:"format" validate:"regexp=^(text|json)$"`

	// Pretty indents json output.
	Pretty bool `toml:"pretty" yaml:"pretty"`

	// Preview draws the content with highlighted matches in the terminal.
	Preview bool `toml:"preview" yaml:"preview"`
}

// WatchConfig controls re-running on input changes.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Debounce Duration `toml:"debounce" yaml:"debounce" validate:"min=0"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"regexp=^(debug|info|warn|error)$"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:          ModeStrings,
		ScriptTimeout: Duration(5 * time.Second),
		Output: OutputConfig{
			Format: FormatText,
		},
		Watch: WatchConfig{
			Debounce: Duration(100 * time.Millisecond),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks field values and the combinations between them.
func (c Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	for _, name := range []string{c.MatchTransform, c.GapTransform} {
		if name == "" {
			continue
		}
		if transform.IsScript(name) {
			if c.Script == "" {
				return fmt.Errorf("%s: %w", name, ErrScriptRequired)
			}
			continue
		}
		if !slices.Contains(transform.Names(), name) {
			return fmt.Errorf("%w: unknown transform %q (have %v)", ErrValidationFailed, name, transform.Names())
		}
	}

	if c.Output.Preview && c.Mode != ModeRanges && c.Mode != ModeStrings {
		return fmt.Errorf("%w: preview needs mode ranges or strings, got %q", ErrValidationFailed, c.Mode)
	}
	// The preview blocks until the user quits, so it cannot run per change.
	if c.Output.Preview && c.Watch.Enabled {
		return fmt.Errorf("%w: preview cannot be combined with watch", ErrValidationFailed)
	}
	return nil
}

// Duration is a time.Duration that config files spell as "250ms" or "2s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}
