package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-pro":        "gemini-2.5-pro",
	"gemini-3-pro":      "gemini-3-pro-preview",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
}

// Safety levels accepted in GeminiConfig.Safety.
const (
	SafetyStrict   = "strict"
	SafetyStandard = "standard"
	SafetyRelaxed  = "relaxed"
	SafetyOff      = "off"
)

var safetyThresholds = map[string]genai.HarmBlockThreshold{
	SafetyStrict:   genai.HarmBlockThresholdBlockLowAndAbove,
	SafetyStandard: genai.HarmBlockThresholdBlockMediumAndAbove,
	SafetyRelaxed:  genai.HarmBlockThresholdBlockOnlyHigh,
	SafetyOff:      genai.HarmBlockThresholdBlockNone,
}

var moderatedCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
	safety []*genai.SafetySetting
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingCredential{Provider: ProviderGemini, EnvVar: "ETERNAL_GEMINI_API_KEY"}
	}
	safety, err := geminiSafety(cfg.Safety)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
		safety: safety,
	}, nil
}

// geminiSafety builds one setting per moderated category. An empty level
// means SafetyStandard.
func geminiSafety(level string) ([]*genai.SafetySetting, error) {
	if level == "" {
		level = SafetyStandard
	}
	threshold, ok := safetyThresholds[level]
	if !ok {
		return nil, fmt.Errorf("unknown Gemini safety level %q", level)
	}
	out := make([]*genai.SafetySetting, 0, len(moderatedCategories))
	for _, c := range moderatedCategories {
		out = append(out, &genai.SafetySetting{Category: c, Threshold: threshold})
	}
	return out, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	model := pickModel(req.Model, p.model, geminiModels)

	result, err := p.client.Models.GenerateContent(ctx, model, geminiContents(req.Messages), p.generateConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}

	c := readGemini(result)
	if c.model == "" {
		c.model = model
	}
	return c.finish(ProviderGemini, req)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func (p *GeminiProvider) generateConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{SafetySettings: p.safety}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(req.Schema.Definition)
	}
	return cfg
}

// readGemini extracts the first candidate. A prompt rejected outright has
// no candidates and carries the reason in PromptFeedback.
func readGemini(result *genai.GenerateContentResponse) completion {
	c := completion{stop: StopEnd, model: result.ModelVersion}
	if u := result.UsageMetadata; u != nil {
		c.usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}

	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		c.stop, c.detail = StopBlocked, string(fb.BlockReason)
		return c
	}
	if len(result.Candidates) == 0 {
		return c
	}

	switch reason := result.Candidates[0].FinishReason; reason {
	case genai.FinishReasonMaxTokens:
		c.stop = StopMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		c.stop, c.detail = StopBlocked, string(reason)
		return c
	}
	c.text = result.Text()
	return c
}

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// geminiSchema converts a JSON Schema map to a genai.Schema. Enum lists
// are kept so region and gender can only take listed values. Keywords
// Gemini does not understand, like additionalProperties, are dropped.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := def["type"].(string); ok {
		if gt, ok := geminiTypes[t]; ok {
			s.Type = gt
		}
	}
	s.Description, _ = def["description"].(string)
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])

	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

// stringList reads a JSON Schema string array written as []any or
// []string.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		return classifyStatus(apiErr.Code, err)
	case errors.As(err, &apiErrPtr):
		return classifyStatus(apiErrPtr.Code, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// classifyStatus maps an HTTP status from any vendor to a typed error.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
