package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func customersCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers",
	}
	root.AddCommand(customerListCmd(), customerGetCmd(), customerCreateCmd())
	return root
}

func customerListCmd() *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			customers, err := c.ListCustomers(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, customers)
			}
			if len(customers) == 0 {
				_, err := fmt.Fprintln(w, "No customers found.")
				return err
			}
			return printCustomerTable(w, customers)
		},
	}
	lf.register(cmd)
	return cmd
}

func customerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			cust, err := c.GetCustomer(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if cust == nil {
				return fmt.Errorf("customer %d not found", id)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), cust)
			}
			return printCustomerDetail(cmd.OutOrStdout(), cust)
		},
	}
}

func customerCreateCmd() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Long: "Create a customer. When the email is already registered the existing\n" +
			"customer id is printed instead of failing.",
		Example: `  wizishop customers create --field email=jane@example.com --field firstname=Jane`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(file, pairs)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.CreateCustomer(cmd.Context(), fields)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, res)
			}
			if res.Exists {
				_, err := fmt.Fprintf(w, "Customer already exists (id %s).\n", res.ID)
				return err
			}
			return printCustomerDetail(w, res.Customer)
		},
	}
	payloadFlags(cmd, &file, &pairs)
	return cmd
}
