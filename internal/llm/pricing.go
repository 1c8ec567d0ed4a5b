package llm

import "strings"

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Vendor prefixes ("models/", "google/", "anthropic/", "openai/") are
// ignored so OpenRouter and Gemini model names resolve too.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	for _, prefix := range []string{"models/", "google/", "anthropic/", "openai/"} {
		id = strings.TrimPrefix(id, prefix)
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models reachable through the friendly names in
// this package. Last updated: 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-3-pro-preview":  {2, 12},

	// Anthropic
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
}
