package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [pdf-file]",
	Short: "Import an invoice from a scanned PDF using Google Document AI",
	Long: `Extract the invoice date, PO/reference number, description and total
amount from a scanned invoice PDF using Google Document AI's invoice
parser, and append the result to an existing customer's invoice ledger.

The imported invoice starts with paid = 0, like any hand-entered one.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_CLOUD_PROJECT - Your Google Cloud project ID
  GOOGLE_CLOUD_LOCATION - Processing location (us, eu, etc.)
  DOCUMENT_AI_PROCESSOR_ID - Your Document AI invoice processor ID`,
	Example: `  # Import a scanned invoice for an existing customer
  eien scan invoice.pdf --customer "Acme Plumbing"

  # Review the extracted fields without writing to the ledger
  eien scan invoice.pdf --customer "Acme Plumbing" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan-cmd")

	app, err := newApp()
	if err != nil {
		return err
	}

	customer, _ := cmd.Flags().GetString("customer")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Fail on a bad customer name before spending a Document AI call.
	if _, err := app.svc.FindCustomer(customer); err != nil {
		return err
	}

	pdfFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer pdfFile.Close()

	extractor, err := scan.NewExtractor(cmd.Context())
	if err != nil {
		return err
	}
	defer extractor.Close()

	log.Info().Str("file", args[0]).Str("customer", customer).Msg("Scanning invoice PDF")

	extracted, err := extractor.ExtractInvoice(cmd.Context(), pdfFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Date: %s\n", extracted.Date)
	fmt.Fprintf(out, "PO #: %s\n", extracted.PO)
	fmt.Fprintf(out, "Description: %s\n", extracted.Description)
	fmt.Fprintf(out, "Amount: %s\n", ledger.FormatMoney(extracted.Amount))

	if dryRun {
		fmt.Fprintln(out, "Dry run; nothing was written.")
		return nil
	}

	draft := ledger.InvoiceDraft{
		Date:        extracted.Date,
		PO:          extracted.PO,
		Description: extracted.Description,
		Amount:      extracted.Amount.String(),
	}
	if _, err := app.svc.CreateInvoice(customer, draft); err != nil {
		return err
	}

	fmt.Fprintf(out, "Invoice created for %s.\n", customer)
	return nil
}

func init() {
	scanCmd.Flags().String("customer", "", "Customer name (must match exactly)")
	scanCmd.Flags().Bool("dry-run", false, "Print the extracted fields without writing to the ledger")
	scanCmd.MarkFlagRequired("customer")

	rootCmd.AddCommand(scanCmd)
}
