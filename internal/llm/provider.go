package llm

import (
	"context"
	"encoding/json"
)

// Provider is the vendor-neutral generation capability. Persona profiles
// and orchestrated replies both go through Generate with a JSON schema.
type Provider interface {
	// Generate sends one request and returns the structured response. When
	// req.Schema is set the provider asks for schema-conforming JSON using its
	// native structured output mechanism and validates the result before
	// returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction.
	System string

	// Messages are the content turns. The persona flows send the whole
	// prompt, transcript included, as a single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// response Content is the raw text.
	Schema *Schema

	// Model overrides the provider's configured model for this request.
	// Friendly names are resolved the same way as in configuration.
	Model string

	// MaxTokens caps the response length. Zero lets the provider decide
	// where the vendor API allows it.
	MaxTokens int

	// Temperature controls sampling. Zero leaves the vendor default.
	Temperature float64
}

// Message is a single content turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema and keys the compiled-schema cache.
	// Kebab-case, e.g. "persona-profile".
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	// Accept, when set, is the definition replies are validated against
	// instead of Definition. It lets vendors be steered by enums that the
	// caller normalizes itself.
	Accept map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is one of the Stop* constants.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopBlocked   = "blocked"
)

// completion is what a vendor adapter extracts from a reply before the
// shared checks run.
type completion struct {
	text   string
	model  string
	stop   string
	detail string // vendor reason when stop is StopBlocked
	usage  Usage
}

// finish turns a completion into a Response. Blocked, truncated, empty and
// schema-violating outputs become typed errors.
func (c completion) finish(provider string, req Request) (*Response, error) {
	if c.stop == StopBlocked {
		return nil, &ErrContentBlocked{Provider: provider, Reason: c.detail}
	}
	if c.text == "" {
		return nil, &ErrInvalidResponse{Err: errEmptyContent(provider)}
	}

	content := json.RawMessage(c.text)
	if c.stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// pickModel returns the request override resolved through aliases, or the
// configured model.
func pickModel(override, configured string, aliases map[string]string) string {
	if override == "" {
		return configured
	}
	return resolveModel(override, aliases)
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full model IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
