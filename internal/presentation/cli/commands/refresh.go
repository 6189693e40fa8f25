package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
)

// NewRefreshCmd creates the refresh command.
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the pricing catalog",
		Long:  `Re-fetch the pricing catalog from the currently selected source.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd.Context())
		},
	}
}

func runRefresh(ctx context.Context) error {
	formatter := GetFormatter()
	container := GetContainer()
	if container == nil {
		return fmt.Errorf("application not initialized")
	}

	svc := container.PricingService()
	source := container.PreferredSource(ctx)

	spinner := newFetchSpinner(formatter, fmt.Sprintf("Refreshing %s catalog...", source))
	spinner.Start()

	err := svc.SwitchSource(ctx, source)
	if err != nil {
		if errors.Is(err, domainErrors.ErrRebuildSuperseded) {
			spinner.StopWithError("Refresh superseded by a newer request")
			return nil
		}
		spinner.StopWithError(fmt.Sprintf("Refresh failed: %v", err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Refreshed %s (%d entries)", source, svc.CatalogSize()))
	return nil
}
