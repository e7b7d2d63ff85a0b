package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

func brandsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brands",
		Short: "Manage brands",
	}

	root.AddCommand(
		brandListCmd(),
		brandGetCmd(),
		brandCreateCmd(),
		brandUpdateCmd(),
		brandDeleteCmd(),
	)

	return root
}

func brandListCmd() *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brands",
		Example: `  wizishop brands list
  wizishop brands list --page 2 --limit 20 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			brands, err := c.ListBrands(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, brands)
			}
			if len(brands) == 0 {
				_, err := fmt.Fprintln(w, "No brands found.")
				return err
			}
			return printBrandTable(w, brands)
		},
	}
	lf.register(cmd)
	return cmd
}

func brandGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a brand",
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
			b, err := c.GetBrand(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if b == nil {
				return fmt.Errorf("brand %d not found", id)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), b)
			}
			return printBrandDetail(cmd.OutOrStdout(), b)
		},
	}
}

func brandCreateCmd() *cobra.Command {
	var name, image string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a brand",
		Example: `  wizishop brands create --name Acme --image https://cdn.example.com/acme.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			b, err := c.CreateBrand(cmd.Context(), name, image)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), b)
			}
			return printBrandDetail(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "brand name (required)")
	cmd.Flags().StringVar(&image, "image", "", "brand image URL")
	return cmd
}

func brandUpdateCmd() *cobra.Command {
	var u wizishop.BrandUpdate

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a brand",
		Example: `  wizishop brands update 12 --name "Acme Corp" --url acme-corp`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			b, err := c.UpdateBrand(cmd.Context(), id, u)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), b)
			}
			return printBrandDetail(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&u.Name, "name", "", "brand name (required)")
	cmd.Flags().StringVar(&u.URL, "url", "", "brand URL slug")
	cmd.Flags().StringVar(&u.ImageURL, "image", "", "brand image URL")
	return cmd
}

func brandDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a brand",
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
			if err := c.DeleteBrand(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Brand %d deleted.\n", id)
			return err
		},
	}
}
