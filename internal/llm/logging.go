package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/store"
)

// LoggingProvider records every request in the event log and writes a
// structured log line for it.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Provider with event and structured logging. A nil
// repo or logger disables that sink.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	event := l.event(ctx, req, resp, err, latency)
	l.log(event, latency, err)

	// A failed event write never fails the request.
	if l.eventRepo != nil {
		if werr := l.eventRepo.AppendLLMRequest(ctx, event); werr != nil {
			l.logger.Warn("failed to record llm request event", zap.Error(werr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, latency time.Duration) store.LLMRequestEventData {
	e := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if req.Model != "" {
		e.Model = req.Model
	}
	if resp != nil {
		e.Model = resp.Model
		e.InputTokens = resp.Usage.InputTokens
		e.OutputTokens = resp.Usage.OutputTokens
		e.ResponseBody = string(resp.Content)
	}
	if err != nil {
		e.ErrorMessage = err.Error()
		// Keep what the model actually said when it failed validation.
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			e.ResponseBody = string(invalid.Content)
		}
	}
	return e
}

func (l *LoggingProvider) log(e store.LLMRequestEventData, latency time.Duration, err error) {
	fields := []zap.Field{
		zap.String("provider", e.Provider),
		zap.String("model", e.Model),
		zap.String("purpose", e.Purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", e.InputTokens),
		zap.Int("output_tokens", e.OutputTokens),
	}
	if err == nil {
		l.logger.Debug("llm request completed", fields...)
		return
	}

	var blocked *ErrContentBlocked
	if errors.As(err, &blocked) {
		l.logger.Warn("llm response blocked", append(fields, zap.String("reason", blocked.Reason))...)
		return
	}
	l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
}

// describeRequest renders req as labelled sections for the event log.
func describeRequest(req Request) string {
	var sections []string
	if req.System != "" {
		sections = append(sections, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		sections = append(sections, "["+string(m.Role)+"]\n"+m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			sections = append(sections, "[schema: "+req.Schema.Name+"]\n"+string(def))
		}
	}
	return strings.Join(sections, "\n\n")
}
