package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/pkg/models"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create and view invoices",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice for an existing customer",
	Long: `Create an invoice under an existing customer. The amount may be
written with thousands separators ("1,234.50"); it is stored as entered
with paid starting at zero.`,
	Example: `  eien invoice create --customer "Acme Plumbing" \
    --date 2024-01-01 --po PO-1042 \
    --description "Condenser repair" --amount 1,250.00`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		customer, _ := cmd.Flags().GetString("customer")
		draft := ledger.InvoiceDraft{}
		draft.Date, _ = cmd.Flags().GetString("date")
		draft.PO, _ = cmd.Flags().GetString("po")
		draft.Description, _ = cmd.Flags().GetString("description")
		draft.Amount, _ = cmd.Flags().GetString("amount")
		draft.PaymentLink, _ = cmd.Flags().GetString("payment-link")

		invoice, err := app.svc.CreateInvoice(customer, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Invoice created for %s (%s).\n",
			customer, ledger.FormatMoney(invoice.Amount))
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "View a customer's invoices",
	Long: `Print a customer's invoices in creation order. --status narrows the
view: "outstanding" shows invoices with a balance still due, "paid" shows
settled (or overpaid) ones, "all" shows everything.`,
	Example: `  eien invoice list --customer "Acme Plumbing" --status outstanding`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		customer, _ := cmd.Flags().GetString("customer")
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
			fmt.Fprintln(cmd.OutOrStdout(), "No invoices.")
			return nil
		}

		app.rend.InvoiceList(cmd.OutOrStdout(), invoices)
		return nil
	},
}

func init() {
	invoiceCreateCmd.Flags().String("customer", "", "Customer name (must match exactly)")
	invoiceCreateCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
	invoiceCreateCmd.Flags().String("po", "", "PO number")
	invoiceCreateCmd.Flags().String("description", "", "Description of work/services")
	invoiceCreateCmd.Flags().String("amount", "", "Total amount")
	invoiceCreateCmd.Flags().String("payment-link", "", "Optional payment link")
	invoiceCreateCmd.MarkFlagRequired("customer")
	invoiceCreateCmd.MarkFlagRequired("amount")

	invoiceListCmd.Flags().String("customer", "", "Customer name (must match exactly)")
	invoiceListCmd.Flags().String("status", "all", "Filter: all, paid or outstanding")
	invoiceListCmd.MarkFlagRequired("customer")

	invoiceCmd.AddCommand(invoiceCreateCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	rootCmd.AddCommand(invoiceCmd)
}
