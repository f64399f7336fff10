package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mathconv.yaml", `
input_dir: docs
output_dir: out
extensions: [".md", ".markdown"]
concurrency: 2
reformat_markdown: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.InputDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.ReformatMarkdown)

	// 未设置的键使用默认值
	assert.Equal(t, "math_conversion_log.txt", cfg.LogFileName)
	assert.True(t, cfg.PreserveFrontMatter)
	assert.False(t, cfg.DryRun)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mathconv.yaml", "concurrency: 2\n")
	t.Setenv("MATHCONV_CONCURRENCY", "9")
	t.Setenv("MATHCONV_DRY_RUN", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Concurrency)
	assert.True(t, cfg.DryRun)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true},
		{"no extensions", func(c *Config) { c.Extensions = nil }, true},
		{"empty extension", func(c *Config) { c.Extensions = []string{" "} }, true},
		{"empty input", func(c *Config) { c.InputDir = "" }, true},
		{"log file with path", func(c *Config) { c.LogFileName = "logs/out.txt" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNormalizesExtensions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Extensions = []string{"MD", ".Markdown", " .html "}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".md", ".markdown", ".html"}, cfg.Extensions)
}
