package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// Safety is the content moderation level: strict, standard, relaxed or
	// off. Empty means standard.
	Safety string `yaml:"safety"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults. A failed turn is
// retried by the student re-sending, so provider retries are off.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model:  "gemini-flash",
			Safety: SafetyStandard,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ApplyEnv overlays ETERNAL_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Provider, "ETERNAL_LLM_PROVIDER")

	setString(&cfg.Gemini.APIKey, "ETERNAL_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "ETERNAL_GEMINI_MODEL")
	setString(&cfg.Gemini.Safety, "ETERNAL_GEMINI_SAFETY")

	setString(&cfg.Anthropic.APIKey, "ETERNAL_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "ETERNAL_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "ETERNAL_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "ETERNAL_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "ETERNAL_OPENAI_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "ETERNAL_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "ETERNAL_OPENROUTER_MODEL")

	if v := os.Getenv("ETERNAL_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
}

// ApplyDiscovery fills in the credential of the first provider whose
// standard API key variable is set (Gemini → OpenAI → Anthropic →
// OpenRouter). It only runs when cfg has no usable credential, and reports
// whether a key was found.
func ApplyDiscovery(cfg *Config) bool {
	if cfg.Validate() == nil {
		return false
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return true
	}

	return false
}

// Validate checks that the selected provider has its required API key set.
// A missing key yields *ErrMissingCredential.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "ETERNAL_GEMINI_API_KEY"}
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "ETERNAL_ANTHROPIC_API_KEY"}
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "ETERNAL_OPENAI_API_KEY"}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "ETERNAL_OPENROUTER_API_KEY"}
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
