package main

import (
	"fmt"
	"os"

	"github.com/fin-tools/tco-atlas/pkg/terminal/commands"
	"github.com/fin-tools/tco-atlas/pkg/terminal/export"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tco-atlas",
		Short: "Track product total cost of ownership",
	}

	reporter := export.NewReporter(os.Stdout)
	rootCmd.AddCommand(
		commands.NewReportCmd(reporter),
		commands.NewRefreshCmd(),
		commands.NewImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
