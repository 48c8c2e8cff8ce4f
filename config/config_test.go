package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natbrowser/browser/simplifier"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "natbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
browser:
  start_url: https://example.com
  headful: true
  action_timeout: 5s
simplifier:
  include_url: true
  attribute_keys: [title]
model:
  name: gpt-4o
  temperature: 0
runner:
  max_num_steps: 3
log:
  level: debug
  file: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Browser.StartURL)
	assert.True(t, cfg.Browser.Headful)
	assert.Equal(t, 5*time.Second, cfg.Browser.ActionTimeout)
	assert.Equal(t, Default().Browser.WindowWidth, cfg.Browser.WindowWidth)
	assert.Equal(t, []string{"title"}, cfg.Simplifier.AttributeKeys)
	assert.Equal(t, simplifier.DefaultDenylist(), cfg.Simplifier.Denylist)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Equal(t, float64(0), cfg.Model.Temperature)
	assert.Equal(t, Default().Model.MaxTokens, cfg.Model.MaxTokens)
	assert.Equal(t, 3, cfg.RunnerOptions().MaxNumSteps)

	lc := cfg.LoggingConfig()
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.True(t, lc.File)

	opts := cfg.BrowserOptions()
	assert.True(t, opts.RunHeadful)
	assert.True(t, opts.Simplifier.IncludeURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown field", body: "browser:\n  colour: red\n"},
		{name: "bad level", body: "log:\n  level: loud\n"},
		{name: "zero steps", body: "runner:\n  max_num_steps: 0\n"},
		{name: "zero chunk size", body: "qa:\n  chunk_size: 0\n"},
		{name: "empty model", body: "model:\n  name: \"\"\n"},
		{name: "not yaml", body: "browser: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Model.APIKeyEnv = "NATBOT_TEST_API_KEY"

	t.Setenv("NATBOT_TEST_API_KEY", "")
	_, err := cfg.APIKey()
	assert.Error(t, err)

	t.Setenv("NATBOT_TEST_API_KEY", "sk-test")
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)
}

func TestActorOptions(t *testing.T) {
	opts := Default().ActorOptions()
	assert.Equal(t, 4500, opts.MaxContentLength)
	assert.Equal(t, 100, opts.MaxURLLength)
}

func TestQAOptions(t *testing.T) {
	opts := Default().QAOptions()
	assert.Equal(t, 5500, opts.ChunkSize)
	assert.Equal(t, 250, opts.MaxTokens)

	cfg, err := Load(writeConfig(t, "qa:\n  chunk_size: 1000\n"))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.QAOptions().ChunkSize)
	assert.Equal(t, 0.3, cfg.QAOptions().Temperature)
}
