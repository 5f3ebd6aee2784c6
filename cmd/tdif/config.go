package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults that command line flags may override.
type Config struct {
	LineEnding  string    `yaml:"line_ending" validate:"oneof=platform lf crlf"`
	Compression string    `yaml:"compression" validate:"omitempty,oneof=auto none gzip gz bzip2 bz2 br brotli lz4 xz"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

func defaultConfig() Config {
	return Config{
		LineEnding:  "platform",
		Compression: "auto",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validate = validator.New()

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LineTerminator maps LineEnding onto tdif.Writer.LineTerminator. Platform
// yields "" so the writer keeps its default.
func (c *Config) LineTerminator() string {
	switch c.LineEnding {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	}
	return ""
}
