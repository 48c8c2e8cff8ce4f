// Package config loads natbot settings from YAML. Fields missing from the
// file keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"natbrowser/actor/llmactor"
	"natbrowser/actor/qaactor"
	"natbrowser/browser"
	"natbrowser/browser/simplifier"
	"natbrowser/llm"
	"natbrowser/logging"
	"natbrowser/runner/finiterunner"
)

type Config struct {
	Browser    BrowserConfig    `yaml:"browser"`
	Simplifier SimplifierConfig `yaml:"simplifier"`
	Model      ModelConfig      `yaml:"model"`
	Runner     RunnerConfig     `yaml:"runner"`
	QA         QAConfig         `yaml:"qa"`
	Log        LogConfig        `yaml:"log"`
}

type BrowserConfig struct {
	StartURL                 string        `yaml:"start_url"`
	Headful                  bool          `yaml:"headful"`
	DisableAutomationMessage bool          `yaml:"disable_automation_message"`
	WindowWidth              int           `yaml:"window_width"`
	WindowHeight             int           `yaml:"window_height"`
	ActionTimeout            time.Duration `yaml:"action_timeout"`
	SettleDelay              time.Duration `yaml:"settle_delay"`
}

type SimplifierConfig struct {
	Denylist      []string `yaml:"denylist"`
	AttributeKeys []string `yaml:"attribute_keys"`
	IncludeURL    bool     `yaml:"include_url"`
}

type ModelConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv        string  `yaml:"api_key_env"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	MaxContentLength int     `yaml:"max_content_length"`
	MaxURLLength     int     `yaml:"max_url_length"`
}

type RunnerConfig struct {
	MaxNumSteps int    `yaml:"max_num_steps"`
	LogDir      string `yaml:"log_dir"`
}

// QAConfig tunes "natbot ask". The model itself comes from ModelConfig.
type QAConfig struct {
	ChunkSize   int     `yaml:"chunk_size"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       bool   `yaml:"file"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	AddSource  bool   `yaml:"add_source"`
}

const DefaultStartURL = "https://duckduckgo.com"

func Default() *Config {
	lc := logging.DefaultConfig()
	return &Config{
		Browser: BrowserConfig{
			StartURL:      DefaultStartURL,
			WindowWidth:   browser.DefaultWindowWidth,
			WindowHeight:  browser.DefaultWindowHeight,
			ActionTimeout: browser.DefaultActionTimeout,
			SettleDelay:   browser.DefaultSettleDelay,
		},
		Simplifier: SimplifierConfig{
			Denylist:      simplifier.DefaultDenylist(),
			AttributeKeys: simplifier.DefaultAttributeKeys(),
		},
		Model: ModelConfig{
			Name:             string(llm.DefaultChatModel),
			APIKeyEnv:        "OPENAI_API_KEY",
			Temperature:      llmactor.DefaultTemperature,
			MaxTokens:        llmactor.DefaultMaxTokens,
			MaxContentLength: llmactor.DefaultMaxContentLength,
			MaxURLLength:     llmactor.DefaultMaxURLLength,
		},
		Runner: RunnerConfig{
			MaxNumSteps: finiterunner.DefaultMaxNumSteps,
			LogDir:      "logs",
		},
		QA: QAConfig{
			ChunkSize:   qaactor.DefaultChunkSize,
			Temperature: qaactor.DefaultTemperature,
			MaxTokens:   qaactor.DefaultMaxTokens,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
			Compress:   lc.Compress,
		},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Browser.WindowWidth < 0 || c.Browser.WindowHeight < 0 {
		errs = append(errs, errors.New("browser window size must not be negative"))
	}
	if c.Model.Name == "" {
		errs = append(errs, errors.New("model name is required"))
	}
	if c.Runner.MaxNumSteps <= 0 {
		errs = append(errs, errors.New("runner max_num_steps must be positive"))
	}
	if c.QA.ChunkSize <= 0 {
		errs = append(errs, errors.New("qa chunk_size must be positive"))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

func (c *Config) BrowserOptions() *browser.Options {
	return &browser.Options{
		RunHeadful:                        c.Browser.Headful,
		AttemptToDisableAutomationMessage: c.Browser.DisableAutomationMessage,
		WindowWidth:                       c.Browser.WindowWidth,
		WindowHeight:                      c.Browser.WindowHeight,
		ActionTimeout:                     c.Browser.ActionTimeout,
		SettleDelay:                       c.Browser.SettleDelay,
		Simplifier:                        c.SimplifierOptions(),
	}
}

func (c *Config) SimplifierOptions() *simplifier.Options {
	return &simplifier.Options{
		Denylist:      c.Simplifier.Denylist,
		AttributeKeys: c.Simplifier.AttributeKeys,
		IncludeURL:    c.Simplifier.IncludeURL,
	}
}

func (c *Config) ActorOptions() *llmactor.Options {
	return &llmactor.Options{
		MaxContentLength: c.Model.MaxContentLength,
		MaxURLLength:     c.Model.MaxURLLength,
		Temperature:      c.Model.Temperature,
		MaxTokens:        c.Model.MaxTokens,
	}
}

func (c *Config) QAOptions() *qaactor.Options {
	return &qaactor.Options{
		ChunkSize:   c.QA.ChunkSize,
		Temperature: c.QA.Temperature,
		MaxTokens:   c.QA.MaxTokens,
	}
}

func (c *Config) RunnerOptions() *finiterunner.Options {
	return &finiterunner.Options{MaxNumSteps: c.Runner.MaxNumSteps}
}

func (c *Config) LoggingConfig() *logging.Config {
	level, err := c.Log.level()
	if err != nil {
		level = slog.LevelInfo
	}
	return &logging.Config{
		Level:      level,
		File:       c.Log.File,
		Dir:        c.Log.Dir,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
		AddSource:  c.Log.AddSource,
	}
}

// APIKey reads the model API key from the configured environment variable.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.Model.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.Model.APIKeyEnv)
	}
	return key, nil
}
