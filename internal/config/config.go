package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/boardmate/internal/ai"
)

// Config holds the boardmate settings read from config.yaml.
type Config struct {
	// Gemini
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     string  `yaml:"timeout"`

	// Local state and output
	StatePath string `yaml:"state_path"`
	OutDir    string `yaml:"out_dir"`

	// FontPath is an optional TTF used for PDF export instead of the Go fonts.
	FontPath string `yaml:"font_path"`
}

func Default() *Config {
	return &Config{
		Model:       ai.DefaultModel,
		Temperature: ai.DefaultTemperature,
		StatePath:   filepath.Join(baseDir(), "state.db"),
		OutDir:      ".",
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "boardmate")
	}
	return ".boardmate"
}

// Load reads path over the defaults. A missing file is not an error. The
// environment overrides file values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(k); v != "" {
			c.APIKey = v
			break
		}
	}
	if v := os.Getenv("BOARDMATE_STATE"); v != "" {
		c.StatePath = v
	}
}

func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Timeout. Zero means the request has no deadline.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
