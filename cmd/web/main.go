package main

import (
	"fmt"
	"os"

	"github.com/fin-tools/tco-atlas/pkg/server"
	"github.com/fin-tools/tco-atlas/pkg/services/catalog"
	"github.com/fin-tools/tco-atlas/pkg/services/config"
	"github.com/fin-tools/tco-atlas/pkg/services/refresh"
	"github.com/fin-tools/tco-atlas/pkg/services/tco"
	"github.com/fin-tools/tco-atlas/pkg/store/duckdb"
	coststore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/cost"
	productstore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/product"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the TCO Atlas web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "tco-atlas.yaml",
		"Path to the service configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Database.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	costs, err := coststore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create cost store: %w", err)
	}
	products, err := productstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create product store: %w", err)
	}

	svc := catalog.NewService(costs, products)
	calculator := tco.NewCalculator(svc, svc)
	updater := tco.NewUpdater(calculator, svc)

	if cfg.Refresh.Enabled {
		runner := refresh.NewRunner(svc, updater, refresh.Config{
			Interval:         cfg.Refresh.Interval,
			TimePeriodMonths: cfg.TCO.DefaultMonths,
		})
		go runner.Run(ctx)
		logger.Info().
			Dur("interval", cfg.Refresh.Interval).
			Msg("snapshot refresh runner started")
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.Server.Addr,
		Dependencies: server.Dependencies{
			Catalog:    svc,
			Calculator: calculator,
			Updater:    updater,
			Logger:     logger,
		},
	})

	return api.Start()
}
