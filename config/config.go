// Package config loads the localizer configuration from a YAML file with
// environment variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/TravanaHQ/localizer"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration for the localizer binary.
type Config struct {
	// Provider selects the translation backend: "deepl" (default) or "openai".
	Provider string `yaml:"provider"`

	DeepL struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"deepl"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	SourceLang string   `yaml:"source_lang"`
	Locales    []string `yaml:"locales"`

	// Fan-out tuning. Cooldown is in milliseconds because yaml.v3 has no
	// native duration parsing.
	BatchSize  int `yaml:"batch_size"`
	CooldownMS int `yaml:"cooldown_ms"`

	// Cache. RedisURL empty means in-memory.
	CacheTTL int    `yaml:"cache_ttl"`
	RedisURL string `yaml:"redis_url"`

	// Server.
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file is present. Missing
// provider credentials are not an error; the pipeline degrades to
// pass-through until a key appears.
func Default() Config {
	var cfg Config
	cfg.Provider = "deepl"
	cfg.SourceLang = "en"
	cfg.Locales = append([]string(nil), localizer.SiteLocales...)
	cfg.BatchSize = localizer.DefaultBatchSize
	cfg.CooldownMS = int(localizer.DefaultCooldown / time.Millisecond)
	cfg.CacheTTL = 3600
	cfg.Listen = ":8087"
	return cfg
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty, and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path is operator-provided
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DEEPL_API_KEY"); v != "" {
		c.DeepL.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("LOCALIZER_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("LOCALIZER_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
}

func (c *Config) normalize() {
	if c.Provider == "" {
		c.Provider = "deepl"
	}
	if c.SourceLang == "" {
		c.SourceLang = "en"
	}
	if len(c.Locales) == 0 {
		c.Locales = append([]string(nil), localizer.SiteLocales...)
	}
	if c.BatchSize <= 0 {
		c.BatchSize = localizer.DefaultBatchSize
	}
	if c.CooldownMS < 0 {
		c.CooldownMS = int(localizer.DefaultCooldown / time.Millisecond)
	}
	if c.Listen == "" {
		c.Listen = ":8087"
	}
}

// Cooldown returns the fan-out cooldown as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMS) * time.Millisecond
}
