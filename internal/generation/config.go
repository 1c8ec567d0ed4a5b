package generation

// Purpose labels recorded with every LLM request.
const (
	PurposeProfile = "persona-profile"
	PurposeTurn    = "orchestrator-turn"
)

// Config holds sampling settings for the two generation calls. The model
// fields override the provider's configured model; profiles suit a fast
// model while turns benefit from a stronger one.
type Config struct {
	ProfileModel       string  `yaml:"profile_model"`
	TurnModel          string  `yaml:"turn_model"`
	ProfileTemperature float64 `yaml:"profile_temperature"`
	ProfileMaxTokens   int     `yaml:"profile_max_tokens"`
	TurnTemperature    float64 `yaml:"turn_temperature"`
	TurnMaxTokens      int     `yaml:"turn_max_tokens"`
}

// DefaultConfig returns the reference sampling values.
func DefaultConfig() Config {
	return Config{
		ProfileTemperature: 0.5,
		ProfileMaxTokens:   1024,
		TurnTemperature:    0.7,
		TurnMaxTokens:      2048,
	}
}
