package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/eternal/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"reply":"Greetings"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), "orchestrator-turn")
	_, err := p.Generate(ctx, Request{
		System:   "You are the orchestrator.",
		Messages: []Message{{Role: RoleUser, Content: "Who are you?"}},
		Schema:   &Schema{Name: "orchestrator-turn", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "orchestrator-turn" || !e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Fatalf("unexpected usage: %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]") || !strings.Contains(e.RequestBody, "[schema: orchestrator-turn]") {
		t.Fatalf("request body not serialized: %q", e.RequestBody)
	}
	if e.ResponseBody != `{"reply":"Greetings"}` {
		t.Fatalf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailureAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", repo.events[0])
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected one failure log line, got %d", logs.Len())
	}
}

func TestLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", repo, zap.NewNop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestLogging_BlockedResponse(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrContentBlocked{Provider: "gemini", Reason: "SAFETY"}})
	repo := &recordingRepo{}
	p := WithLogging(mock, "gemini", repo, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{Model: "gemini-pro"}); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("llm response blocked").All()
	if len(entries) != 1 {
		t.Fatalf("expected one blocked log line, got %d", logs.Len())
	}
	if entries[0].ContextMap()["reason"] != "SAFETY" {
		t.Fatalf("reason field = %v", entries[0].ContextMap()["reason"])
	}
	if repo.events[0].Model != "gemini-pro" {
		t.Fatalf("event model = %q, want the request override", repo.events[0].Model)
	}
}

func TestLogging_KeepsInvalidContent(t *testing.T) {
	raw := json.RawMessage(`{"reply":42}`)
	mock := NewMockProvider(MockResponse{Err: &ErrInvalidResponse{Content: raw, Err: errors.New("bad type")}})
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, nil)

	_, _ = p.Generate(context.Background(), Request{})
	if repo.events[0].ResponseBody != string(raw) {
		t.Fatalf("response body = %q", repo.events[0].ResponseBody)
	}
}
