package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/modelworth/internal/adapters/catalog"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	"github.com/jbctechsolutions/modelworth/internal/presentation/cli/output"
)

// sourceStatus describes one pricing source for display.
type sourceStatus struct {
	Name        string `json:"name"`
	Selected    bool   `json:"selected"`
	LastRefresh string `json:"last_refresh,omitempty"`
	LastEntries int    `json:"last_entries,omitempty"`
}

// NewSourcesCmd creates the sources command.
func NewSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		Aliases: []string{"providers"},
		Short:   "List pricing sources",
		Long:  `List the supported pricing sources, the currently selected one, and when each was last refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(cmd.Context())
		},
	}
}

func runSources(ctx context.Context) error {
	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	selected := container.PreferredSource(ctx)
	prefs := container.Preferences()

	statuses := make([]sourceStatus, 0, len(catalog.Sources()))
	for _, source := range catalog.Sources() {
		status := sourceStatus{
			Name:     string(source),
			Selected: source == selected,
		}

		last, err := prefs.LastRefresh(ctx, string(source))
		if err != nil && !errors.Is(err, domainErrors.ErrPreferencesEmpty) {
			return err
		}
		if last != nil {
			status.LastRefresh = last.RefreshedAt.Format("2006-01-02 15:04:05")
			status.LastEntries = last.Entries
		}

		statuses = append(statuses, status)
	}

	table := output.TableData{
		Columns: []output.TableColumn{
			{Header: "SOURCE"},
			{Header: "SELECTED"},
			{Header: "LAST REFRESH"},
			{Header: "ENTRIES", Align: output.AlignRight},
		},
	}
	for _, status := range statuses {
		selectedMark := ""
		if status.Selected {
			selectedMark = "✓"
		}
		refresh := status.LastRefresh
		if refresh == "" {
			refresh = "never"
		}
		entries := "-"
		if status.LastEntries > 0 {
			entries = fmt.Sprintf("%d", status.LastEntries)
		}
		table.Rows = append(table.Rows, []string{status.Name, selectedMark, refresh, entries})
	}

	return formatter.FormatAuto(statuses, &table)
}
