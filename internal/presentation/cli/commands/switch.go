package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/modelworth/internal/adapters/catalog"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	"github.com/jbctechsolutions/modelworth/internal/presentation/cli/output"
)

// NewSwitchCmd creates the switch command.
func NewSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <source>",
		Short: "Switch the active pricing source",
		Long: `Switch the active pricing source and rebuild the catalog from it.

The selection is persisted, so later commands keep using the new source.
Valid sources: openrouter, helicone, litellm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd.Context(), args[0])
		},
	}
}

func runSwitch(ctx context.Context, name string) error {
	source := catalog.Source(strings.ToLower(strings.TrimSpace(name)))
	if !source.Valid() {
		sources := make([]string, 0, len(catalog.Sources()))
		for _, s := range catalog.Sources() {
			sources = append(sources, string(s))
		}
		return fmt.Errorf("unknown source %q: must be one of %s", name, strings.Join(sources, ", "))
	}

	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	svc := container.PricingService()

	spinner := newFetchSpinner(formatter, fmt.Sprintf("Fetching %s catalog...", source))
	spinner.Start()

	err := svc.SwitchSource(ctx, source)
	if err != nil {
		if errors.Is(err, domainErrors.ErrRebuildSuperseded) {
			spinner.StopWithError("Rebuild superseded by a newer request")
			return nil
		}
		spinner.StopWithError(fmt.Sprintf("Switch failed: %v", err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Switched to %s (%d entries)", source, svc.CatalogSize()))
	return nil
}

// newFetchSpinner builds a spinner for catalog fetches. In JSON mode the
// spinner writes nothing so stdout stays machine-readable.
func newFetchSpinner(formatter *output.Formatter, message string) *output.Spinner {
	if formatter.Format() == output.FormatJSON {
		return output.NewSpinner(message, output.WithSpinnerWriter(io.Discard), output.WithSpinnerColor(false))
	}
	return output.NewSpinner(message)
}
