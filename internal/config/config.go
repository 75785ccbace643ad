// Package config loads process settings from an optional YAML file and the
// environment. Environment variables always win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"gopkg.in/yaml.v3"
)

// LLM selects the backend and its limits.
type LLM struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
	BaseURL   string        `yaml:"base_url"`
}

// Keys holds one credential per provider and news source.
type Keys struct {
	Anthropic    string `yaml:"anthropic"`
	OpenAI       string `yaml:"openai"`
	Gemini       string `yaml:"gemini"`
	FinnHub      string `yaml:"finnhub"`
	AlphaVantage string `yaml:"alpha_vantage"`
	Massive      string `yaml:"massive"`
}

type Config struct {
	LLM         LLM    `yaml:"llm"`
	Keys        Keys   `yaml:"keys"`
	RedisURL    string `yaml:"redis_url"`
	HTTPAddr    string `yaml:"http_addr"`
	FrontendURL string `yaml:"frontend_url"`
}

func defaults() Config {
	return Config{
		LLM: LLM{
			Provider:  llm.ProviderAnthropic,
			MaxTokens: 1024,
			Timeout:   30 * time.Second,
		},
		HTTPAddr: ":8080",
	}
}

// Load reads path if it is non-empty and exists, then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("%w: parse config %s: %w", llm.ErrConfiguration, path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.LLM.Provider, "SIGNAL_PROVIDER")
	setString(&c.LLM.Model, "SIGNAL_MODEL")
	setString(&c.LLM.BaseURL, "SIGNAL_BASE_URL")
	setString(&c.Keys.Anthropic, "ANTHROPIC_API_KEY")
	setString(&c.Keys.OpenAI, "OPENAI_API_KEY")
	setString(&c.Keys.Gemini, "GEMINI_API_KEY")
	setString(&c.Keys.FinnHub, "FINNHUB_API_KEY")
	setString(&c.Keys.AlphaVantage, "ALPHA_VANTAGE_API_KEY")
	setString(&c.Keys.Massive, "MASSIVE_API_KEY")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.FrontendURL, "FRONTEND_URL")

	if v := os.Getenv("SIGNAL_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SIGNAL_MAX_TOKENS=%q: %w", llm.ErrConfiguration, v, err)
		}
		c.LLM.MaxTokens = n
	}
	if v := os.Getenv("SIGNAL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SIGNAL_TIMEOUT=%q: %w", llm.ErrConfiguration, v, err)
		}
		c.LLM.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Backend returns the llm.Config for the selected provider, picking the
// matching credential.
func (c *Config) Backend() llm.Config {
	var key string
	switch c.LLM.Provider {
	case llm.ProviderOpenAI:
		key = c.Keys.OpenAI
	case llm.ProviderGemini:
		key = c.Keys.Gemini
	default:
		key = c.Keys.Anthropic
	}
	return llm.Config{
		Provider:  c.LLM.Provider,
		Model:     c.LLM.Model,
		MaxTokens: c.LLM.MaxTokens,
		APIKey:    key,
		BaseURL:   c.LLM.BaseURL,
		Timeout:   c.LLM.Timeout,
	}
}
