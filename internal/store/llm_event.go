package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LLMEventRepo implements EventRepo on the diagnostics database and adds
// the read side used by the `llm` subcommands.
type LLMEventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ EventRepo = (*LLMEventRepo)(nil)

func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_request_events (
		sequence, timestamp, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success,
		error_message, request_body, response_body
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

const llmEventColumns = `id, sequence, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success,
	error_message, request_body, response_body`

// QueryLLMEvents returns events newest first, filtered by opts.
func (r *LLMEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UTC())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UTC())
	}

	var q strings.Builder
	q.WriteString("SELECT " + llmEventColumns + " FROM llm_request_events")
	if len(where) > 0 {
		q.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	q.WriteString(" ORDER BY sequence DESC")
	if opts.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns the event with the given ID, or nil if none exists.
func (r *LLMEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+llmEventColumns+" FROM llm_request_events WHERE id = ?", id)
	e, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LLMUsageByPurpose aggregates calls and tokens per purpose label.
func (r *LLMEventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel aggregates calls and tokens per model.
func (r *LLMEventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(s rowScanner) (LLMEvent, error) {
	var e LLMEvent
	err := s.Scan(
		&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scan LLM event: %w", err)
	}
	return e, nil
}
