package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/modelworth/internal/application"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	"github.com/jbctechsolutions/modelworth/internal/presentation/cli/output"
)

// resolveResult holds a pricing lookup result for JSON output.
type resolveResult struct {
	Query       string  `json:"query"`
	Matched     bool    `json:"matched"`
	SourceModel string  `json:"source_model,omitempty"`
	InputPer1M  float64 `json:"input_per_1m,omitempty"`
	OutputPer1M float64 `json:"output_per_1m,omitempty"`
	Blended     float64 `json:"blended_per_1m,omitempty"`
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <model name>",
		Short: "Resolve a model name to its pricing",
		Long: `Resolve a leaderboard display name against the pricing catalog.

The name is normalized and matched with suffix stripping, date stripping,
and prefix fallbacks, so messy display names like "GPT 5.2 (high)" still
find their catalog entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func runResolve(ctx context.Context, name string) error {
	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	if err := ensureCatalog(ctx, container, formatter); err != nil {
		return err
	}

	rec, ok, err := container.PricingService().Resolve(ctx, name)
	if err != nil {
		return err
	}

	result := resolveResult{Query: name, Matched: ok}
	if ok {
		result.SourceModel = rec.SourceModel
		result.InputPer1M = rec.InputPer1M
		result.OutputPer1M = rec.OutputPer1M
		result.Blended = rec.BlendedPrice()
	}

	if formatter.Format() == output.FormatJSON {
		return formatter.JSON(result)
	}

	if !ok {
		return domainErrors.NewError(domainErrors.CodeNotFound, fmt.Sprintf("no pricing match for %q", name), nil)
	}

	formatter.Header(result.SourceModel)
	formatter.Item("Input", output.Price(result.InputPer1M)+" / 1M tokens")
	formatter.Item("Output", output.Price(result.OutputPer1M)+" / 1M tokens")
	formatter.Item("Blended", output.Price(result.Blended)+" / 1M tokens")
	formatter.Item("Source", string(container.PricingService().Source()))

	return nil
}

// ensureCatalog loads the catalog from the preferred source when none is
// active yet, showing fetch progress outside JSON mode.
func ensureCatalog(ctx context.Context, container *application.Container, formatter *output.Formatter) error {
	if container.PricingService().CatalogSize() > 0 {
		return nil
	}

	source := container.PreferredSource(ctx)
	spinner := newFetchSpinner(formatter, fmt.Sprintf("Loading %s catalog...", source))
	spinner.Start()

	if err := container.EnsureCatalog(ctx); err != nil {
		spinner.StopWithError(fmt.Sprintf("Catalog load failed: %v", err))
		return err
	}

	spinner.Stop()
	return nil
}
