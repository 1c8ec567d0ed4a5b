package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/eternal/internal/config"
	"github.com/abhisek/eternal/internal/llm"
	"github.com/abhisek/eternal/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded profile and dialogue requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withStore(cmd, func(s *store.Store) error {
			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			writeEventList(cmd.OutOrStdout(), events)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(s *store.Store) error {
			e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			writeEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			repo := s.EventRepo()
			byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			byModel, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
			return nil
		})
	},
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...)
}

func writeEventList(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "yes"
		if !e.Success {
			ok = "no"
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	fmt.Fprintln(w, t.String())
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fields := []struct{ label, value string }{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, struct{ label, value string }{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f.label+":", f.value)
	}

	section(w, "PROMPT", e.RequestBody)
	section(w, "REPLY", e.ResponseBody)
}

func section(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, title, rule, body)
}

func writeUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	var calls, in, out int
	usage := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	for _, u := range byPurpose {
		usage.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	usage.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, usage.String())

	if len(byModel) == 0 {
		return
	}

	var total float64
	var unpriced []string
	cost := newTable("Model", "Calls", "Input", "Output", "Cost")
	for _, m := range byModel {
		price := "?"
		if c := llm.LookupCost(m.Model); c != nil {
			usd := c.Cost(m.InputTokens, m.OutputTokens)
			total += usd
			price = formatCost(usd)
		} else {
			unpriced = append(unpriced, m.Model)
		}
		cost.Row(truncate(m.Model, 32), strconv.Itoa(m.Calls), strconv.Itoa(m.InputTokens),
			strconv.Itoa(m.OutputTokens), price)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	cost.Row(label, "", "", "", formatCost(total))

	fmt.Fprintln(w, "\nEstimated Cost (USD)")
	fmt.Fprintln(w, cost.String())
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "Pricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

// withStore opens the event log named by --db, the config file or the
// environment, runs fn and closes it. No LLM credential is needed.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (persona-profile, orchestrator-turn)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
