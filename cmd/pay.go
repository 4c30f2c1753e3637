package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PF6771/eien-invoice/internal/ledger"
)

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a payment against an outstanding invoice",
	Long: `Record a payment. --invoice is the 1-based position in the customer's
outstanding list, as shown by "eien invoice list --status outstanding".
Payments accumulate on the invoice's paid total; paying more than the
balance is allowed and leaves the invoice overpaid.`,
	Example: `  eien pay --customer "Acme Plumbing" --invoice 1 --amount 200.00`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		customer, _ := cmd.Flags().GetString("customer")
		selection, _ := cmd.Flags().GetInt("invoice")
		amount, _ := cmd.Flags().GetString("amount")

		receipt, err := app.svc.RecordPayment(customer, selection, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Payment of %s recorded. Balance: %s\n",
			ledger.FormatMoney(receipt.Amount),
			ledger.FormatMoney(receipt.Invoice.Balance()))
		return nil
	},
}

func init() {
	payCmd.Flags().String("customer", "", "Customer name (must match exactly)")
	payCmd.Flags().Int("invoice", 0, "1-based index into the outstanding invoice list")
	payCmd.Flags().String("amount", "", "Payment amount")
	payCmd.MarkFlagRequired("customer")
	payCmd.MarkFlagRequired("invoice")
	payCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(payCmd)
}
