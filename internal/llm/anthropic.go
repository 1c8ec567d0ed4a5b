package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultAnthropicMaxTokens is used when a request leaves MaxTokens unset;
// the Messages API requires a positive value.
const defaultAnthropicMaxTokens = 1024

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-5-20250929",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider implements Provider using the Anthropic SDK.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider. Extra request
// options are appended after the API key, which lets tests point the
// client at a local server.
func NewAnthropicProvider(cfg AnthropicConfig, opts ...option.RequestOption) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingCredential{Provider: ProviderAnthropic, EnvVar: "ETERNAL_ANTHROPIC_API_KEY"}
	}

	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	return &AnthropicProvider{
		client: &client,
		model:  resolveModel(cfg.Model, anthropicModels),
	}, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.messageParams(req))
	if err != nil {
		return nil, mapAnthropicError(err)
	}
	return readAnthropic(msg).finish(ProviderAnthropic, req)
}

func (p *AnthropicProvider) ModelID() string {
	return p.model
}

func (p *AnthropicProvider) messageParams(req Request) anthropic.MessageNewParams {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(pickModel(req.Model, p.model, anthropicModels)),
		MaxTokens: maxTokens,
		Messages:  anthropicMessages(req.Messages),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}
	return params
}

func anthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
			continue
		}
		out = append(out, anthropic.NewUserMessage(block))
	}
	return out
}

func readAnthropic(msg *anthropic.Message) completion {
	c := completion{
		model: string(msg.Model),
		stop:  StopEnd,
		usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}

	switch msg.StopReason {
	case anthropic.StopReasonMaxTokens:
		c.stop = StopMaxTokens
	case anthropic.StopReasonRefusal:
		c.stop, c.detail = StopBlocked, string(msg.StopReason)
		return c
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	c.text = text.String()
	return c
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.StatusCode, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
