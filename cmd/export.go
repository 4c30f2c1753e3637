package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/internal/sheets"
	"github.com/PF6771/eien-invoice/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a customer's invoices to a Google Sheet",
	Long: `Append a customer's invoices as rows to a Google Sheet, one row per
invoice with amount, paid total, balance and payment status. The worksheet
is created with a header row if it does not exist yet.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  eien export --customer "Acme Plumbing" \
    --sheet "https://docs.google.com/spreadsheets/d/SHEET_ID/edit"

  # Only outstanding invoices, to a named worksheet
  eien export --customer "Acme Plumbing" --sheet "$SHEET_URL" \
    --worksheet Receivables --status outstanding`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export-cmd")

	app, err := newApp()
	if err != nil {
		return err
	}

	customer, _ := cmd.Flags().GetString("customer")
	sheetURL, _ := cmd.Flags().GetString("sheet")
	worksheet, _ := cmd.Flags().GetString("worksheet")
	status, _ := cmd.Flags().GetString("status")

	filter, ok := models.ParseStatusFilter(status)
	if !ok {
		return fmt.Errorf("unknown status %q (want all, paid or outstanding)", status)
	}

	invoices, err := app.svc.ListInvoices(customer, filter)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No invoices to export.")
		return nil
	}

	svc, err := sheets.NewService(cmd.Context(), sheetURL)
	if err != nil {
		return err
	}

	log.Info().Str("customer", customer).Int("invoices", len(invoices)).Msg("Exporting to Google Sheets")

	if err := svc.ExportInvoices(cmd.Context(), customer, invoices, worksheet); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d invoice(s) for %s.\n", len(invoices), customer)
	return nil
}

func init() {
	exportCmd.Flags().String("customer", "", "Customer name (must match exactly)")
	exportCmd.Flags().String("sheet", "", "Google Sheets URL")
	exportCmd.Flags().String("worksheet", "Invoices", "Worksheet name within the spreadsheet")
	exportCmd.Flags().String("status", "all", "Filter: all, paid or outstanding")
	exportCmd.MarkFlagRequired("customer")
	exportCmd.MarkFlagRequired("sheet")

	rootCmd.AddCommand(exportCmd)
}
