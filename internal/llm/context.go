package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label (e.g. "orchestrator-turn") to the
// context. The logging decorator records it with each request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
