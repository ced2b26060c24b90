// Package config loads codec settings from YAML and maps them onto
// session options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
)

// Config is the YAML configuration surface of the codec.
type Config struct {
	Mode          string `yaml:"mode"`           // Framing mode: "raw" or "gzip"
	Level         int    `yaml:"level"`          // DEFLATE level (-2..9, -1 = default)
	BufferSize    int    `yaml:"buffer_size"`    // Scratch buffer capacity in bytes
	VerifyTrailer bool   `yaml:"verify_trailer"` // Check gzip trailer CRC/length on decompress
}

// DefaultConfig returns a Config with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Mode:          string(domain.ModeRaw),
		Level:         domain.LevelDefault,
		BufferSize:    domain.DefaultBufferSize,
		VerifyTrailer: true,
	}
}

// Load reads and validates configuration from a YAML file. Fields left
// out of the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Options converts the configuration into session options.
func (c *Config) Options() *domain.Options {
	return &domain.Options{
		Mode:                domain.Mode(c.Mode),
		Level:               c.Level,
		BufferSize:          c.BufferSize,
		DisableTrailerCheck: !c.VerifyTrailer,
	}
}

func validate(config *Config) error {
	switch domain.Mode(config.Mode) {
	case domain.ModeRaw, domain.ModeGzip:
	default:
		return fmt.Errorf("mode must be %q or %q", domain.ModeRaw, domain.ModeGzip)
	}

	if config.Level < domain.LevelHuffmanOnly || config.Level > domain.LevelBest {
		return fmt.Errorf("level must be between %d and %d", domain.LevelHuffmanOnly, domain.LevelBest)
	}

	if config.BufferSize < domain.MinBufferSize {
		return fmt.Errorf("buffer_size must be at least %d", domain.MinBufferSize)
	}

	return nil
}
