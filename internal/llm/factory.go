package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware. The configuration is validated first so a missing
// credential fails before any client is built.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
