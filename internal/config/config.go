// Package config loads optional defaults for subshift from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/subshift/internal/subtitle"
	"github.com/mgpai22/subshift/internal/textenc"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "SUBSHIFT_CONFIG"

var ErrInvalid = errors.New("invalid config")

// Config holds user defaults; command-line flags override every field.
type Config struct {
	Encoding string `toml:"encoding"`
	Style    string `toml:"style"`
	Verbose  bool   `toml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Encoding: textenc.Auto,
		Style:    string(subtitle.StyleCompact),
	}
}

// DefaultPath is <user config dir>/subshift/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "subshift", "config.toml"), nil
}

// Load reads the config. An explicit path (argument or $SUBSHIFT_CONFIG) must
// exist; a missing file at the default location yields Default().
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		explicit = false
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Encoding = strings.TrimSpace(c.Encoding)
	c.Style = strings.ToLower(strings.TrimSpace(c.Style))
	if c.Encoding == "" {
		c.Encoding = textenc.Auto
	}
	if c.Style == "" {
		c.Style = string(subtitle.StyleCompact)
	}
}

// Validate checks that the encoding and style are known.
func (c Config) Validate() error {
	if _, err := subtitle.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("%w: style %q must be %q or %q",
			ErrInvalid, c.Style, subtitle.StyleCompact, subtitle.StyleSRT)
	}
	if !strings.EqualFold(c.Encoding, textenc.Auto) {
		if _, _, err := textenc.Lookup(c.Encoding); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}
