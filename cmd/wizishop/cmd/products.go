package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
	}

	root.AddCommand(
		productListCmd(),
		productGetCmd(),
		productCreateCmd(),
		productUpdateCmd(),
	)

	return root
}

func productListCmd() *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Example: `  wizishop products list
  wizishop products list --param status=active --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			products, err := c.ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, products)
			}
			if len(products) == 0 {
				_, err := fmt.Fprintln(w, "No products found.")
				return err
			}
			return printProductTable(w, products)
		},
	}
	lf.register(cmd)
	return cmd
}

func productGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
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
			p, err := c.GetProduct(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("product %d not found", id)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			return printProductDetail(cmd.OutOrStdout(), p)
		},
	}
}

func productCreateCmd() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long: "Create a product from a JSON payload and/or --field pairs. When the API\n" +
			"rejects the product and --failures-dir is set, the payload is saved there\n" +
			"as error-product-<sku>.json.",
		Example: `  wizishop products create --file product.json
  wizishop products create --field sku=TSHIRT-01 --field name="T-shirt" --field price=19.9`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(file, pairs)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.CreateProduct(cmd.Context(), fields)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			return printProductDetail(cmd.OutOrStdout(), p)
		},
	}
	payloadFlags(cmd, &file, &pairs)
	return cmd
}

func productUpdateCmd() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a product",
		Example: `  wizishop products update 1234 --field stock=12 --field price=21.5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := readFields(file, pairs)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.UpdateProduct(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			return printProductDetail(cmd.OutOrStdout(), p)
		},
	}
	payloadFlags(cmd, &file, &pairs)
	return cmd
}
