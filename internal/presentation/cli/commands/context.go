package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	domainPricing "github.com/jbctechsolutions/modelworth/internal/domain/pricing"
	"github.com/jbctechsolutions/modelworth/internal/presentation/cli/output"
)

// contextResult holds a context window lookup result for JSON output.
type contextResult struct {
	Query            string   `json:"query"`
	Matched          bool     `json:"matched"`
	SourceModel      string   `json:"source_model,omitempty"`
	ContextLength    int      `json:"context_length,omitempty"`
	InputModalities  []string `json:"input_modalities,omitempty"`
	OutputModalities []string `json:"output_modalities,omitempty"`
}

// NewContextCmd creates the context command.
func NewContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context <model name>",
		Short: "Look up a model's context window",
		Long: `Look up the context window length and input modalities for a model.

Context metadata always comes from the OpenRouter catalog, regardless of
which pricing source is selected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func runContext(ctx context.Context, name string) error {
	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	if err := ensureCatalog(ctx, container, formatter); err != nil {
		return err
	}

	rec, ok, err := container.PricingService().ResolveContext(ctx, name)
	if err != nil {
		return err
	}

	result := contextResult{Query: name, Matched: ok}
	if ok {
		result.SourceModel = rec.SourceModel
		result.ContextLength = rec.ContextLength
		result.InputModalities = modalityNames(rec.InputModalities)
		result.OutputModalities = modalityNames(rec.OutputModalities)
	}

	if formatter.Format() == output.FormatJSON {
		return formatter.JSON(result)
	}

	if !ok {
		return domainErrors.NewError(domainErrors.CodeNotFound, fmt.Sprintf("no context match for %q", name), nil)
	}

	formatter.Header(result.SourceModel)
	formatter.Item("Context", output.ContextLength(result.ContextLength)+" tokens")
	if len(result.InputModalities) > 0 {
		formatter.Item("Input", strings.Join(result.InputModalities, ", "))
	}
	if len(result.OutputModalities) > 0 {
		formatter.Item("Output", strings.Join(result.OutputModalities, ", "))
	}

	return nil
}

// modalityNames flattens a modality set into sorted strings for display.
func modalityNames(set domainPricing.ModalitySet) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for m := range set {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}
