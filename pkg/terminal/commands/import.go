package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/fin-tools/tco-atlas/pkg/services/ingest/awsce"
	"github.com/fin-tools/tco-atlas/pkg/store/duckdb"
	coststore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/cost"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	dbPath    string
	productID string
	profile   string
	months    int
}

func NewImportCmd() *cobra.Command {
	ic := &ImportCmd{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import AWS Cost Explorer spend as cost records for a product",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", "tco-atlas.db", "Path to the database file")
	cmd.Flags().StringVar(&ic.productID, "product", "", "Product ID to attach imported costs to")
	cmd.Flags().StringVar(&ic.profile, "profile", "", "AWS shared config profile")
	cmd.Flags().IntVar(&ic.months, "months", 12, "How many calendar months back to import")

	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	awsCfg, err := awsce.LoadConfig(ctx, ic.profile)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	costs, err := coststore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create cost store: %w", err)
	}

	importer := awsce.NewImporter(costexplorer.NewFromConfig(*awsCfg), db, costs)
	imported, err := importer.ImportMonthlyCosts(ctx, ic.productID, ic.months)
	if err != nil {
		return err
	}

	cmd.Printf("Imported %d cost records for product %s\n", imported, ic.productID)
	return nil
}
