package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/natefinch/atomic"
)

// ServerConfig holds the configuration for the API server and shared storage.
type ServerConfig struct {
	ApiAddr            string `json:"api_addr"`
	LogLevel           string `json:"log_level"`
	DatabasePath       string `json:"database_path"`
	MaxWordsPerRequest int    `json:"max_words_per_request"`
}

// GeneratorConfig holds the model and generation defaults. Zero values are
// replaced with the library defaults by Normalized.
type GeneratorConfig struct {
	Order       int    `json:"order"`
	Charset     string `json:"charset"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
	MaxAttempts int    `json:"max_attempts"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server    *ServerConfig    `json:"server_config"`
	Generator *GeneratorConfig `json:"generator_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ApiAddr:            ":7279",
		LogLevel:           "info",
		DatabasePath:       "./data/pseudoword.db?_journal_mode=WAL&_busy_timeout=5000",
		MaxWordsPerRequest: 500,
	}
}

// DefaultGeneratorConfig creates a generator configuration with default values.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Order:       pseudoword.DefaultOrder,
		Charset:     pseudoword.DefaultCharset,
		MinLength:   0,
		MaxLength:   pseudoword.DefaultMaxLength,
		MaxAttempts: pseudoword.DefaultMaxAttempts,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Server:    DefaultServerConfig(),
		Generator: DefaultGeneratorConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Server == nil {
		config.Server = DefaultServerConfig()
	}
	if config.Generator == nil {
		config.Generator = DefaultGeneratorConfig()
	}
	return config, nil
}

// Normalized returns a copy of c with malformed values replaced by defaults.
func (c GeneratorConfig) Normalized() GeneratorConfig {
	c.Order = pseudoword.NormalizeOrder(c.Order)
	c.Charset = pseudoword.SanitizeCharset(c.Charset).String()
	if c.MinLength < 0 {
		c.MinLength = 0
	}
	if c.MaxLength < 1 {
		c.MaxLength = pseudoword.DefaultMaxLength
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = pseudoword.DefaultMaxAttempts
	}
	return c
}

// Override returns a copy of c with every non-zero field of o applied.
func (c GeneratorConfig) Override(o GeneratorConfig) GeneratorConfig {
	if o.Order != 0 {
		c.Order = o.Order
	}
	if o.Charset != "" {
		c.Charset = o.Charset
	}
	if o.MinLength != 0 {
		c.MinLength = o.MinLength
	}
	if o.MaxLength != 0 {
		c.MaxLength = o.MaxLength
	}
	if o.MaxAttempts != 0 {
		c.MaxAttempts = o.MaxAttempts
	}
	return c
}

// BuildModel trains a model on words using c's order and charset.
func (c GeneratorConfig) BuildModel(words []string) (*pseudoword.Model, error) {
	c = c.Normalized()
	return pseudoword.NewModel(words, c.Order, pseudoword.SanitizeCharset(c.Charset))
}

// Options returns the generation options described by c.
func (c GeneratorConfig) Options() []pseudoword.GenerateOption {
	c = c.Normalized()
	return []pseudoword.GenerateOption{
		pseudoword.WithMinLength(c.MinLength),
		pseudoword.WithMaxLength(c.MaxLength),
		pseudoword.WithMaxAttempts(c.MaxAttempts),
	}
}
