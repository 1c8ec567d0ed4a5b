package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to diagnostic events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
