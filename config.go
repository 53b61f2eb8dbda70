package atlas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSide is the default maximum side length of a trimmed sprite.
const DefaultMaxSide = 256

// Config controls how images are turned into sprites.
type Config struct {
	// MaxSide skips any image whose trimmed area exceeds MaxSide squared
	MaxSide int `toml:"max_side" yaml:"max_side"`
	// Rotate allows sprites taller than they are wide to be turned 90
	// degrees counter-clockwise
	Rotate bool `toml:"rotate" yaml:"rotate"`
	// Trim crops fully transparent borders
	Trim bool `toml:"trim" yaml:"trim"`
	// Dedup collapses byte-identical images into one sprite
	Dedup bool `toml:"dedup" yaml:"dedup"`
	// Split is reserved for dividing long sprites into pieces. Only the
	// initial canvas estimate currently honours it.
	Split bool `toml:"split" yaml:"split"`
	// Workers sets the worker pool size, zero picks one per spare CPU
	Workers int `toml:"workers" yaml:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxSide: DefaultMaxSide,
		Rotate:  true,
		Trim:    true,
		Dedup:   true,
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, over the top of
// c. Keys absent from the file leave c untouched and unknown keys are an
// error.
func LoadConfig(file string, c *Config) error {
	switch filepath.Ext(file) {
	case ".toml":
		md, err := toml.DecodeFile(file, c)
		if err != nil {
			return fmt.Errorf("atlas: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return fmt.Errorf("atlas: unknown config key \"%s\" in \"%s\"", keys[0], file)
		}
	case ".yaml", ".yml":
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("atlas: %w", err)
		}
		defer f.Close()

		d := yaml.NewDecoder(f)
		d.KnownFields(true)
		if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("atlas: %w", err)
		}
	default:
		return fmt.Errorf("atlas: unsupported config file \"%s\"", file)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return max(runtime.NumCPU()-1, 1)
}
