package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4.1",
}

// OpenAIProvider implements Provider over the Chat Completions API. Any
// OpenAI-compatible service works through BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingCredential{Provider: ProviderOpenAI, EnvVar: "ETERNAL_OPENAI_API_KEY"}
	}
	return newChatCompletionsProvider(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels)), nil
}

func newChatCompletionsProvider(name, apiKey, baseURL, model string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		name:   name,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	return readChatCompletion(resp).finish(p.name, req)
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               pickModel(req.Model, p.model, openaiModels),
		Messages:            chatMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema == nil {
		return chatReq, nil
	}

	def, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return chatReq, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
	}
	chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        req.Schema.Name,
			Description: req.Schema.Description,
			Schema:      json.RawMessage(def),
			Strict:      true,
		},
	}
	return chatReq, nil
}

func chatMessages(req Request) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func readChatCompletion(resp openai.ChatCompletionResponse) completion {
	c := completion{
		model: resp.Model,
		stop:  StopEnd,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return c
	}

	choice := resp.Choices[0]
	switch {
	case choice.FinishReason == openai.FinishReasonContentFilter:
		c.stop, c.detail = StopBlocked, string(choice.FinishReason)
		return c
	case choice.Message.Refusal != "":
		c.stop, c.detail = StopBlocked, choice.Message.Refusal
		return c
	case choice.FinishReason == openai.FinishReasonLength:
		c.stop = StopMaxTokens
	}
	c.text = choice.Message.Content
	return c
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
