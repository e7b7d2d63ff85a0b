package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

func skusCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skus",
		Short: "Manage SKUs and stock",
	}
	root.AddCommand(skuListCmd(), skuGetCmd(), skuStockCmd())
	return root
}

func skuListCmd() *cobra.Command {
	var (
		lf       listFlags
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List SKUs",
		Example: `  wizishop skus list
  wizishop skus list --detailed --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			var skus []wizishop.Sku
			if detailed {
				skus, err = c.ListDetailedSkus(cmd.Context(), q)
			} else {
				skus, err = c.ListSkus(cmd.Context(), q)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, skus)
			}
			if len(skus) == 0 {
				_, err := fmt.Fprintln(w, "No SKUs found.")
				return err
			}
			return printSkuTable(w, skus)
		},
	}
	lf.register(cmd)
	cmd.Flags().BoolVar(&detailed, "detailed", false, "request detailed records")
	return cmd
}

func skuGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <sku>",
		Short: "Show a SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			s, err := c.GetSku(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("sku %q not found", args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printSkuDetail(cmd.OutOrStdout(), s)
		},
	}
}

func skuStockCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "stock <sku> <quantity>",
		Short: "Update the stock of a SKU",
		Example: `  wizishop skus stock TSHIRT-01 25
  wizishop skus stock TSHIRT-01 3 --method decrease`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			s, err := c.UpdateSkuStock(cmd.Context(), args[0], qty, wizishop.StockMethod(method))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printSkuDetail(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&method, "method", string(wizishop.StockReplace), "replace, increase or decrease")
	return cmd
}
