package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/internal/session"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "eien",
	Short: "Eien - a personal invoicing ledger",
	Long: `Eien tracks customers, invoices and partial payments in a single
local data file.

Run it with no arguments for the interactive menu session, or use the
subcommands (customer, invoice, pay, scan, export) for scripting.

The ledger is a plain JSON document (eien_data.json by default, override
with EIEN_DATA_FILE). It is rewritten in full after every change; do not
edit it from a second process while a session is running.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Str("data_file", app.cfg.DataFile).
			Msg("Starting interactive session")

		return session.New(app.svc, app.rend, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
