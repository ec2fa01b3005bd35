package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "RANGESCAN_"

// envSetter applies one environment value to a Config.
type envSetter func(c *Config, value string) error

// envMapping maps environment variable names to settings.
var envMapping = map[string]envSetter{
	"RANGESCAN_QUERY":           setString(func(c *Config) *string { return &c.Query }),
	"RANGESCAN_MODE":            setString(func(c *Config) *string { return &c.Mode }),
	"RANGESCAN_INVERT":          setBool(func(c *Config) *bool { return &c.Invert }),
	"RANGESCAN_MATCH_TRANSFORM": setString(func(c *Config) *string { return &c.MatchTransform }),
	"RANGESCAN_GAP_TRANSFORM":   setString(func(c *Config) *string { return &c.GapTransform }),
	"RANGESCAN_SCRIPT":          setString(func(c *Config) *string { return &c.Script }),
	"RANGESCAN_SCRIPT_TIMEOUT":  setDuration(func(c *Config) *Duration { return &c.ScriptTimeout }),
	"RANGESCAN_OUTPUT_FORMAT":   setString(func(c *Config) *string { return &c.Output.Format }),
	"RANGESCAN_OUTPUT_PRETTY":   setBool(func(c *Config) *bool { return &c.Output.Pretty }),
	"RANGESCAN_OUTPUT_PREVIEW":  setBool(func(c *Config) *bool { return &c.Output.Preview }),
	"RANGESCAN_WATCH":           setBool(func(c *Config) *bool { return &c.Watch.Enabled }),
	"RANGESCAN_WATCH_DEBOUNCE":  setDuration(func(c *Config) *Duration { return &c.Watch.Debounce }),
	"RANGESCAN_LOG_LEVEL":       setString(func(c *Config) *string { return &c.Log.Level }),
}

// EnvVars returns the names of the environment variables ApplyEnv reads.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	return names
}

// ApplyEnv overlays RANGESCAN_* environment variables onto cfg.
// Empty values are treated as set, not as unset.
func ApplyEnv(cfg *Config) error {
	return ApplyEnvFunc(cfg, os.LookupEnv)
}

// ApplyEnvFunc is ApplyEnv with a custom lookup, for tests.
func ApplyEnvFunc(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, val); err != nil {
			return fmt.Errorf("%s=%q: %w", name, val, err)
		}
	}
	return nil
}

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

func setBool(field func(*Config) *bool) envSetter {
	return func(c *Config, value string) error {
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setDuration(field func(*Config) *Duration) envSetter {
	return func(c *Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*field(c) = Duration(d)
		return nil
	}
}

// parseBool accepts the spellings people use in shells.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}
