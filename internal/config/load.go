package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads the configuration file at path on top of Default.
// The format is chosen by extension: .toml, .yaml or .yml.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := merge(&cfg, path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge reads the configuration file at path into cfg. Settings absent
// from the file keep their current values. Unknown keys are errors.
func merge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return decodeTOML(path, data, cfg)
	case ".yaml", ".yml":
		return decodeYAML(path, data, cfg)
	default:
		return fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document leaves cfg untouched.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
