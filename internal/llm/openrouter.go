package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider targets OpenRouter's OpenAI-compatible endpoint.
// Model names are vendor-prefixed IDs such as "google/gemini-2.5-flash"
// and are sent as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingCredential{Provider: ProviderOpenRouter, EnvVar: "ETERNAL_OPENROUTER_API_KEY"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &OpenRouterProvider{
		OpenAIProvider: newChatCompletionsProvider(ProviderOpenRouter, cfg.APIKey, baseURL, cfg.Model),
	}, nil
}
