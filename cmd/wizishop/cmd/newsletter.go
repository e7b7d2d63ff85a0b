package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newsletterCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "newsletter",
		Short: "Newsletter subscriptions",
	}
	root.AddCommand(newsletterSubscribersCmd())
	return root
}

func newsletterSubscribersCmd() *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "List newsletter subscribers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			subs, err := c.ListNewsletterSubscribers(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, subs)
			}
			if len(subs) == 0 {
				_, err := fmt.Fprintln(w, "No subscribers found.")
				return err
			}
			return printSubscriberTable(w, subs)
		},
	}
	lf.register(cmd)
	return cmd
}
