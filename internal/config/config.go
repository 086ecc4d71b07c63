package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"           env:"SLIDESMITH_PROVIDER"`
	APIKey   string `yaml:"api_key,omitempty"  env:"SLIDESMITH_API_KEY"`
	Model    string `yaml:"model"              env:"SLIDESMITH_MODEL"`
	BaseURL  string `yaml:"base_url,omitempty" env:"SLIDESMITH_BASE_URL"`

	Temperature float64 `yaml:"temperature" env:"SLIDESMITH_TEMPERATURE"`
	MaxTokens   int     `yaml:"max_tokens"  env:"SLIDESMITH_MAX_TOKENS"`

	Server ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"SLIDESMITH_HOST"`
	Port int    `yaml:"port" env:"SLIDESMITH_PORT"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slidesmith"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, if any, then applies environment overrides.
// Returns nil (no error) when no file exists and no environment variables
// are set, so callers can trigger first-run setup.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg = DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		cfg = nil
	default:
		return nil, err
	}

	if cfg == nil {
		if os.Getenv("SLIDESMITH_PROVIDER") == "" && providerKeyFromEnv("openai") == "" {
			return nil, nil
		}
		cfg = DefaultConfig()
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = providerKeyFromEnv(cfg.Provider)
	}
	return nil
}

// providerKeyFromEnv picks up the conventional vendor variables so a bare
// OPENAI_API_KEY is enough to run.
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
