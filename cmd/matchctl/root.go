package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "matchctl",
		Short: "Match supplier invoices against the product catalog",
		Long: `matchctl - offline invoice matching

Reads a supplier invoice (CFDI XML, CSV, XLS or XLSX), matches every line
against the product catalog and prints the suggested links.

The catalog comes from --catalog or CATALOG_DSN: a postgres:// URL,
sqlite:<path>, a spreadsheet, or nothing for the demo catalog.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.Version = version
	root.SetVersionTemplate("matchctl {{.Version}}\n")

	root.AddCommand(newMatchCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("matchctl %s\n", version)
		},
	}
}
