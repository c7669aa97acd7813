package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), config.Server)
	assert.Equal(t, DefaultGeneratorConfig(), config.Generator)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should have been written")

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, again)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"generator_config": {"order": 3, "charset": "abc"}}`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, config.Generator.Order)
	assert.Equal(t, "abc", config.Generator.Charset)
	assert.Equal(t, DefaultServerConfig(), config.Server)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestGeneratorConfigNormalized(t *testing.T) {
	got := GeneratorConfig{Order: -1, Charset: "$$", MinLength: -4, MaxLength: 0, MaxAttempts: 0}.Normalized()
	assert.Equal(t, GeneratorConfig{
		Order:       pseudoword.DefaultOrder,
		Charset:     pseudoword.DefaultCharset,
		MinLength:   0,
		MaxLength:   pseudoword.DefaultMaxLength,
		MaxAttempts: pseudoword.DefaultMaxAttempts,
	}, got)

	got = GeneratorConfig{Order: 3, Charset: "a$bb", MinLength: 2, MaxLength: 9, MaxAttempts: 4}.Normalized()
	assert.Equal(t, GeneratorConfig{Order: 3, Charset: "ab", MinLength: 2, MaxLength: 9, MaxAttempts: 4}, got)
}

func TestGeneratorConfigOverride(t *testing.T) {
	base := *DefaultGeneratorConfig()
	got := base.Override(GeneratorConfig{Order: 1, MaxLength: 6})

	assert.Equal(t, 1, got.Order)
	assert.Equal(t, 6, got.MaxLength)
	assert.Equal(t, base.Charset, got.Charset)
	assert.Equal(t, base.MaxAttempts, got.MaxAttempts)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("Debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warn").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}
