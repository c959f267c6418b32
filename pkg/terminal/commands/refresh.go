package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/services/tco"
	"github.com/spf13/cobra"
)

type RefreshCmd struct {
	dbPath    string
	productID string
	months    int
}

func NewRefreshCmd() *cobra.Command {
	rc := &RefreshCmd{}
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recalculate and persist the TCO snapshot for a product",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dbPath, "db", "tco-atlas.db", "Path to the database file")
	cmd.Flags().StringVar(&rc.productID, "product", "", "Product ID to refresh")
	cmd.Flags().IntVar(&rc.months, "months", tco.DefaultTimePeriodMonths, "Reporting window in months")

	_ = cmd.MarkFlagRequired("product")

	return cmd
}

func (rc *RefreshCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	calculator, svc, cleanup, err := buildServices(rc.dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	updater := tco.NewUpdater(calculator, svc)
	product, err := updater.Refresh(ctx, rc.productID, rc.months)
	if err != nil {
		return fmt.Errorf("failed to refresh tco snapshot: %w", err)
	}

	cmd.Printf("Product %s: %s %.2f (calculated %s)\n",
		product.ID,
		product.TCOCurrency,
		*product.TCO,
		product.TCOLastCalculated.Format(time.RFC3339))
	return nil
}
