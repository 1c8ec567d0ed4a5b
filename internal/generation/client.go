package generation

import (
	"context"

	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/llm"
)

// Client turns domain requests into structured generation calls.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// NewClient creates a generation client over provider.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

// GenerateProfile asks the provider for a persona profile of targetPerson
// written in language. Any failure is returned as *GenerationError.
func (c *Client) GenerateProfile(ctx context.Context, targetPerson, language string) (*domain.Profile, error) {
	ctx = llm.WithPurpose(ctx, PurposeProfile)

	req := llm.Request{
		System: profileSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildProfileUserMessage(targetPerson, language)},
		},
		Schema:      ProfileSchema,
		Model:       c.cfg.ProfileModel,
		MaxTokens:   c.cfg.ProfileMaxTokens,
		Temperature: c.cfg.ProfileTemperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Op: OpProfile, Err: err}
	}

	profile, err := DecodeProfile(resp.Content)
	if err != nil {
		return nil, &GenerationError{Op: OpProfile, Err: err}
	}
	return profile, nil
}

// SendTurn asks the provider for the next in-character reply. history must
// be the log as it was before message was appended, so the question is not
// repeated in the transcript.
func (c *Client) SendTurn(ctx context.Context, message string, history []domain.Message, settings domain.Settings) (*domain.TurnResponse, error) {
	ctx = llm.WithPurpose(ctx, PurposeTurn)

	req := llm.Request{
		System: buildTurnSystemPrompt(settings),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTurnUserMessage(message, history)},
		},
		Schema:      TurnSchema,
		Model:       c.cfg.TurnModel,
		MaxTokens:   c.cfg.TurnMaxTokens,
		Temperature: c.cfg.TurnTemperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Op: OpTurn, Err: err}
	}

	turn, err := DecodeTurn(resp.Content)
	if err != nil {
		return nil, &GenerationError{Op: OpTurn, Err: err}
	}
	return turn, nil
}
