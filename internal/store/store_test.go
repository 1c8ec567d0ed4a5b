package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if err := s.DB().Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "persona-profile", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "orchestrator-turn", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Sequence != 2 || events[1].Sequence != 1 {
		t.Errorf("sequences = %d,%d, want 2,1", events[0].Sequence, events[1].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("ETERNAL_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("ETERNAL_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "eternal", "eternal.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func seedEvents(t *testing.T, repo *LLMEventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "persona-profile", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"p":1}`, ResponseBody: `{"r":1}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "orchestrator-turn", InputTokens: 300, OutputTokens: 120, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "orchestrator-turn", InputTokens: 10, LatencyMs: 600, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Error("expected newest first")
	}

	turns, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "orchestrator-turn"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(turns) != 2 {
		t.Errorf("turn events = %d, want 2", len(turns))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 || limited[0].ErrorMessage != "boom" {
		t.Errorf("limited = %+v, want only the newest failed event", limited)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after = %d, want 1", len(after))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future = %d, want 0", len(future))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event 1")
	}
	if e.Purpose != "persona-profile" || e.RequestBody != `{"p":1}` || e.ResponseBody != `{"r":1}` {
		t.Errorf("event = %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	turn := byPurpose[0]
	if turn.Purpose != "orchestrator-turn" || turn.Calls != 2 || turn.InputTokens != 310 || turn.OutputTokens != 120 || turn.AvgLatencyMs != 500 {
		t.Errorf("turn usage = %+v", turn)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("flash usage = %+v", byModel[0])
	}
}
