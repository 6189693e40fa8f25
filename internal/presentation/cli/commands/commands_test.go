package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand executes a cobra command with the given args.
func executeCommand(root *cobra.Command, args ...string) error {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd == nil {
		t.Fatal("NewRootCmd returned nil")
	}

	if cmd.Use != "mw" {
		t.Errorf("expected Use='mw', got %q", cmd.Use)
	}

	// Check key subcommands exist
	wantSubcmds := []string{"version", "sources", "switch", "refresh", "resolve", "context", "value", "shell"}
	subcmds := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcmds[sub.Name()] = true
	}

	for _, want := range wantSubcmds {
		if !subcmds[want] {
			t.Errorf("missing subcommand: %s", want)
		}
	}

	// Check persistent flags
	wantFlags := []string{"config", "output", "verbose"}
	for _, flag := range wantFlags {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag: %s", flag)
		}
	}
}

func TestVersionCmd_NoError(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"basic", []string{"version"}, false},
		{"short", []string{"version", "--short"}, false},
		{"json", []string{"version", "-o", "json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			err := executeCommand(cmd, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLeaderboardRows(t *testing.T) {
	t.Run("capability field", func(t *testing.T) {
		rows, err := parseLeaderboardRows([]byte(`[
			{"model": "GPT 5.2 (high)", "capability": 1510, "rank": 1},
			{"model": "Claude Sonnet 4.5", "capability": 1495, "rank": 2}
		]`))
		if err != nil {
			t.Fatalf("parseLeaderboardRows() error = %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		if rows[0].Model != "GPT 5.2 (high)" || rows[0].Capability != 1510 || rows[0].Rank != 1 {
			t.Errorf("row 0 = %+v", rows[0])
		}
	})

	t.Run("score alias", func(t *testing.T) {
		rows, err := parseLeaderboardRows([]byte(`[{"model": "gemini-3-pro", "score": 1480}]`))
		if err != nil {
			t.Fatalf("parseLeaderboardRows() error = %v", err)
		}
		if rows[0].Capability != 1480 {
			t.Errorf("capability = %v, want 1480 from score alias", rows[0].Capability)
		}
	})

	t.Run("missing rank defaults to position", func(t *testing.T) {
		rows, err := parseLeaderboardRows([]byte(`[
			{"model": "a", "capability": 1300},
			{"model": "b", "capability": 1200}
		]`))
		if err != nil {
			t.Fatalf("parseLeaderboardRows() error = %v", err)
		}
		if rows[0].Rank != 1 || rows[1].Rank != 2 {
			t.Errorf("ranks = %d, %d, want 1, 2", rows[0].Rank, rows[1].Rank)
		}
	})

	t.Run("missing model name", func(t *testing.T) {
		if _, err := parseLeaderboardRows([]byte(`[{"capability": 1300}]`)); err == nil {
			t.Error("expected error for missing model name")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := parseLeaderboardRows([]byte(`{"not": "an array"}`)); err == nil {
			t.Error("expected error for non-array input")
		}
	})
}

func TestSwitchCmd_RejectsUnknownSource(t *testing.T) {
	err := runSwitch(context.Background(), "alpha-vantage")
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
}
