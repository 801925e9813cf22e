package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/purchase-parser/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "*.txt", cfg.InputPattern)
	assert.Equal(t, config.FormatText, cfg.OutputFormat)
	assert.Equal(t, "{original}_{uuid}", cfg.NameFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.True(t, cfg.ShouldContinueOnError())
	assert.True(t, cfg.ShouldArchive())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMainConfig_File(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
output_format: xml
log_level: debug
max_concurrency: 8
continue_on_error: false
archive_on_success: false
`)

	cfg, err := config.LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir, "unset keys keep defaults")
	assert.Equal(t, config.FormatXML, cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.False(t, cfg.ShouldContinueOnError())
	assert.False(t, cfg.ShouldArchive())
}

func TestLoadMainConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output_format: xml\nmax_concurrency: 8\n")

	t.Setenv("PURCHASE_OUTPUT_FORMAT", "yaml")
	t.Setenv("PURCHASE_CONTINUE_ON_ERROR", "false")

	cfg, err := config.LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, cfg.OutputFormat)
	assert.Equal(t, 8, cfg.MaxConcurrency, "file value kept when no env var is set")
	assert.False(t, cfg.ShouldContinueOnError())
}

func TestLoadMainConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PURCHASE_OUTPUT_FORMAT=xlsx\nPURCHASE_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("PURCHASE_LOG_LEVEL", "error")

	cfg, err := config.LoadMainConfig(config.DefaultConfigFile)
	require.NoError(t, err)

	assert.Equal(t, config.FormatXLSX, cfg.OutputFormat, ".env fills unset variables")
	assert.Equal(t, "error", cfg.LogLevel, "process environment wins over .env")
}

func TestLoadMainConfig_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.LoadMainConfig(config.DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMainConfig_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad yaml", "input_dir: [unclosed", "failed to parse config file"},
		{"unknown format", "output_format: pdf", "unknown output_format"},
		{"unknown log level", "log_level: loud", "unknown log level"},
		{"unknown log format", "log_format: xml", "unknown log_format"},
		{"negative concurrency", "max_concurrency: -1", "max_concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadMainConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestOutputFormat_Extension(t *testing.T) {
	assert.Equal(t, ".txt", config.FormatText.Extension())
	assert.Equal(t, ".xml", config.FormatXML.Extension())
	assert.Equal(t, ".yaml", config.FormatYAML.Extension())
	assert.Equal(t, ".xlsx", config.FormatXLSX.Extension())
}
