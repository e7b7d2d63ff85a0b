package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}
	root.AddCommand(categoryListCmd(), categoryCreateCmd())
	return root
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			cats, err := c.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, cats)
			}
			if len(cats) == 0 {
				_, err := fmt.Fprintln(w, "No categories found.")
				return err
			}
			return printCategoryTable(w, cats)
		},
	}
}

func categoryCreateCmd() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a category",
		Example: `  wizishop categories create --field name=Shoes --field parent_id=3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(file, pairs)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := c.CreateCategory(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), cat)
		},
	}
	payloadFlags(cmd, &file, &pairs)
	return cmd
}
