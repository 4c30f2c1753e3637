package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a new customer",
	Long: `Register a new customer in the ledger. The name is stored verbatim
(surrounding whitespace trimmed) and matched case-sensitively everywhere
else, so "Acme" and "acme" are different customers.`,
	Example: `  eien customer add "Acme Plumbing"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		name, err := app.svc.AddCustomer(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Customer %s added.\n", name)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered customer names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		names := app.svc.CustomerNames()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No customers.")
			return nil
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
	rootCmd.AddCommand(customerCmd)
}
