package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/services/catalog"
	"github.com/fin-tools/tco-atlas/pkg/services/tco"
	"github.com/fin-tools/tco-atlas/pkg/store/duckdb"
	coststore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/cost"
	productstore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/product"
	"github.com/fin-tools/tco-atlas/pkg/terminal/export"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	dbPath    string
	productID string
	months    int
	reporter  *export.Reporter
}

func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Calculate and print the TCO report for a product",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dbPath, "db", "tco-atlas.db", "Path to the database file")
	cmd.Flags().StringVar(&rc.productID, "product", "", "Product ID to report on")
	cmd.Flags().IntVar(&rc.months, "months", tco.DefaultTimePeriodMonths, "Reporting window in months")

	_ = cmd.MarkFlagRequired("product")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	calculator, _, cleanup, err := buildServices(rc.dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := calculator.CalculateTCO(ctx, rc.productID, rc.months)
	if err != nil {
		return fmt.Errorf("failed to calculate tco: %w", err)
	}

	return rc.reporter.Handle(report)
}

// buildServices opens the database and wires the store-backed services the
// CLI commands share. The returned cleanup closes the database.
func buildServices(dbPath string) (*tco.Calculator, *catalog.Service, func(), error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	costs, err := coststore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to create cost store: %w", err)
	}
	products, err := productstore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to create product store: %w", err)
	}

	svc := catalog.NewService(costs, products)
	calculator := tco.NewCalculator(svc, svc)
	cleanup := func() { _ = db.Close() }
	return calculator, svc, cleanup, nil
}
