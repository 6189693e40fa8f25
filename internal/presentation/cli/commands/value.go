package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appPricing "github.com/jbctechsolutions/modelworth/internal/application/pricing"
	"github.com/jbctechsolutions/modelworth/internal/presentation/cli/output"
)

// valueFlags holds the flags for the value command.
type valueFlags struct {
	Baseline float64
	Decay    float64
	Save     bool
}

// leaderboardInput is the JSON shape accepted for one leaderboard row.
// Score is accepted as an alias for capability since leaderboard exports
// disagree on the field name.
type leaderboardInput struct {
	Model      string  `json:"model"`
	Capability float64 `json:"capability"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
}

// valueRow holds one scored row for JSON output.
type valueRow struct {
	Model         string  `json:"model"`
	Rank          int     `json:"rank"`
	Capability    float64 `json:"capability"`
	Matched       bool    `json:"matched"`
	SourceModel   string  `json:"source_model,omitempty"`
	InputPer1M    float64 `json:"input_per_1m,omitempty"`
	OutputPer1M   float64 `json:"output_per_1m,omitempty"`
	Blended       float64 `json:"blended_per_1m,omitempty"`
	Value         float64 `json:"value,omitempty"`
	Valued        bool    `json:"valued"`
	ContextLength int     `json:"context_length,omitempty"`
}

// NewValueCmd creates the value command.
func NewValueCmd() *cobra.Command {
	var flags valueFlags

	cmd := &cobra.Command{
		Use:   "value [file]",
		Short: "Score leaderboard rows by capability per dollar",
		Long: `Score leaderboard rows against the pricing catalog.

Reads a JSON array of rows from the given file, or from stdin when no file
is given. Each row needs a model name, a capability score, and optionally a
1-based rank (rows without one are ranked by position):

  [{"model": "GPT 5.2 (high)", "capability": 1510, "rank": 1}, ...]

Rows whose model cannot be matched, whose pricing is free, or whose
capability sits below the baseline are listed without a value score.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValue(cmd.Context(), path, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.Baseline, "baseline", -1, "capability baseline override")
	cmd.Flags().Float64Var(&flags.Decay, "decay", -1, "rank decay base override, in (0, 1]")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "persist baseline and decay overrides")

	return cmd
}

func runValue(ctx context.Context, path string, flags valueFlags) error {
	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	data, err := readLeaderboardData(path)
	if err != nil {
		return err
	}

	rows, err := parseLeaderboardRows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no leaderboard rows in input")
	}

	svc := container.PricingService()

	// Apply scorer overrides before scoring
	scorer := svc.Scorer()
	if flags.Baseline >= 0 {
		scorer.Baseline = flags.Baseline
	}
	if flags.Decay > 0 {
		if flags.Decay > 1 {
			return fmt.Errorf("decay must be in (0, 1], got %v", flags.Decay)
		}
		scorer.RankDecayBase = flags.Decay
	}
	svc.SetScorer(scorer)

	if flags.Save {
		if err := container.Preferences().SetScorerOverrides(ctx, scorer.Baseline, scorer.RankDecayBase); err != nil {
			formatter.Warning("Could not save scorer overrides: %v", err)
		}
	}

	if err := ensureCatalog(ctx, container, formatter); err != nil {
		return err
	}

	scored, err := svc.ScoreRows(ctx, rows)
	if err != nil {
		return err
	}

	return renderScoredRows(formatter, scored)
}

// readLeaderboardData reads leaderboard JSON from a file, or stdin when path
// is empty.
func readLeaderboardData(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard file: %w", err)
	}
	return data, nil
}

// parseLeaderboardRows decodes leaderboard JSON into scoring input. Rows
// without an explicit rank get their 1-based position in the array.
func parseLeaderboardRows(data []byte) ([]appPricing.LeaderboardRow, error) {
	var inputs []leaderboardInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("invalid leaderboard JSON: %w", err)
	}

	rows := make([]appPricing.LeaderboardRow, 0, len(inputs))
	for i, in := range inputs {
		if in.Model == "" {
			return nil, fmt.Errorf("row %d: missing model name", i+1)
		}

		capability := in.Capability
		if capability == 0 {
			capability = in.Score
		}

		rank := in.Rank
		if rank <= 0 {
			rank = i + 1
		}

		rows = append(rows, appPricing.LeaderboardRow{
			Model:      in.Model,
			Capability: capability,
			Rank:       rank,
		})
	}

	return rows, nil
}

// renderScoredRows writes the scoring output as a table or JSON.
func renderScoredRows(formatter *output.Formatter, scored []appPricing.ScoredRow) error {
	results := make([]valueRow, 0, len(scored))
	for _, s := range scored {
		results = append(results, valueRow{
			Model:         s.Row.Model,
			Rank:          s.Row.Rank,
			Capability:    s.Row.Capability,
			Matched:       s.Matched,
			SourceModel:   s.SourceModel,
			InputPer1M:    s.InputPer1M,
			OutputPer1M:   s.OutputPer1M,
			Blended:       s.Blended,
			Value:         s.Value,
			Valued:        s.Valued,
			ContextLength: s.ContextLength,
		})
	}

	table := output.TableData{
		Columns: []output.TableColumn{
			{Header: "RANK", Align: output.AlignRight},
			{Header: "MODEL"},
			{Header: "CAPABILITY", Align: output.AlignRight},
			{Header: "BLENDED", Align: output.AlignRight},
			{Header: "CONTEXT", Align: output.AlignRight},
			{Header: "VALUE", Align: output.AlignRight},
		},
	}
	for _, r := range results {
		blended := "-"
		if r.Matched {
			blended = output.Price(r.Blended)
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Model,
			fmt.Sprintf("%.0f", r.Capability),
			blended,
			output.ContextLength(r.ContextLength),
			output.Value(r.Value, r.Valued),
		})
	}

	return formatter.FormatAuto(results, &table)
}
