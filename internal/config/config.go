// Package config resolves repolens runtime configuration from defaults, an
// optional config file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/llm"
)

// Output formats understood by the report renderer.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all runtime configuration for repolens. It is built once by
// the command layer and passed to constructors.
type Config struct {
	GitHubToken string           `mapstructure:"github-token"`
	Provider    llm.ProviderName `mapstructure:"provider"`
	Model       string           `mapstructure:"model"`
	APIKey      string           `mapstructure:"api-key"`
	OllamaHost  string           `mapstructure:"ollama-host"`
	BaseURL     string           `mapstructure:"openai-base-url"`

	MaxAttempts       int           `mapstructure:"max-attempts"`
	RetryDelay        time.Duration `mapstructure:"retry-delay"`
	ReviewThrottle    time.Duration `mapstructure:"review-throttle"`
	LLMReviewThrottle time.Duration `mapstructure:"llm-review-throttle"`
	LanguageThrottle  time.Duration `mapstructure:"language-throttle"`

	Concurrency int    `mapstructure:"concurrency"`
	OutputDir   string `mapstructure:"output-dir"`
	Format      string `mapstructure:"format"`

	Addr        string   `mapstructure:"addr"`
	RateLimit   float64  `mapstructure:"rate-limit"`
	RateBurst   int      `mapstructure:"rate-burst"`
	CORSOrigins []string `mapstructure:"cors-origins"`

	Verbose bool `mapstructure:"verbose"`
}

// providerKeyEnv maps each hosted provider to the environment variable that
// holds its API key.
var providerKeyEnv = map[llm.ProviderName]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix("REPOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("github-token", "REPOLENS_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("ollama-host", "REPOLENS_OLLAMA_HOST", "OLLAMA_HOST")
	for name, env := range providerKeyEnv {
		_ = v.BindEnv(keyName(name), env)
	}

	policy := ghcrawl.DefaultPolicy()
	v.SetDefault("provider", string(llm.ProviderOllama))
	v.SetDefault("model", "")
	v.SetDefault("api-key", "")
	v.SetDefault("openai-base-url", "")
	v.SetDefault("ollama-host", "http://localhost:11434")
	v.SetDefault("max-attempts", policy.MaxAttempts)
	v.SetDefault("retry-delay", policy.BaseDelay)
	v.SetDefault("review-throttle", 500*time.Millisecond)
	v.SetDefault("llm-review-throttle", 300*time.Millisecond)
	v.SetDefault("language-throttle", 500*time.Millisecond)
	v.SetDefault("concurrency", 4)
	v.SetDefault("output-dir", "./reports")
	v.SetDefault("format", FormatText)
	v.SetDefault("addr", ":8080")
	v.SetDefault("rate-limit", 1.0)
	v.SetDefault("rate-burst", 5)
	v.SetDefault("cors-origins", []string{"*"})
	v.SetDefault("verbose", false)
}

// Load reads the config file (configFile, or .repolens.yaml in the working
// or home directory) and resolves the final Config from v. A missing config
// file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".repolens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = v.GetString(keyName(cfg.Provider))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	return &cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	switch c.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderOllama, llm.ProviderNone:
	default:
		return fmt.Errorf("unsupported LLM provider %q: must be openai, anthropic, gemini, ollama, or none", c.Provider)
	}
	if env, hosted := providerKeyEnv[c.Provider]; hosted && c.APIKey == "" {
		return fmt.Errorf("%s requires an API key (set %s)", c.Provider, env)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max-attempts must be at least 1")
	}
	if c.RetryDelay < 0 || c.ReviewThrottle < 0 || c.LLMReviewThrottle < 0 || c.LanguageThrottle < 0 {
		return fmt.Errorf("retry delay and throttles must not be negative")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unsupported format %q: must be text, json, or markdown", c.Format)
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("rate-limit must be positive and rate-burst at least 1")
	}
	for _, o := range c.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("invalid CORS origin %q: must be * or start with http:// or https://", o)
		}
	}
	return nil
}

// Policy returns the GitHub retry policy.
func (c *Config) Policy() ghcrawl.Policy {
	return ghcrawl.Policy{MaxAttempts: c.MaxAttempts, BaseDelay: c.RetryDelay}
}

// ProviderConfig returns the settings used to construct the LLM provider.
func (c *Config) ProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Name:       c.Provider,
		APIKey:     c.APIKey,
		Model:      c.Model,
		OllamaHost: c.OllamaHost,
		BaseURL:    c.BaseURL,
	}
}

// DefaultModel returns the default model name for the given provider.
func DefaultModel(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "gpt-4o"
	case llm.ProviderAnthropic:
		return "claude-sonnet-4-5"
	case llm.ProviderGemini:
		return "gemini-2.5-flash"
	case llm.ProviderOllama:
		return "llama3.1:8b"
	default:
		return ""
	}
}

func keyName(provider llm.ProviderName) string {
	return string(provider) + "-api-key"
}
