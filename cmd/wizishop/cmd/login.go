package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

type sessionInfo struct {
	Token     string     `json:"token"`
	AccountID string     `json:"account_id"`
	ShopID    string     `json:"shop_id"`
	BaseURI   string     `json:"base_uri"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		Long: "Log in with --username and a password and print the session token,\n" +
			"the resolved account and shop ids, and the base URI. The token can be\n" +
			"reused with --token or WIZISHOP_TOKEN to skip further logins.",
		Example: `  wizishop login --username me@example.com
  export WIZISHOP_TOKEN=$(wizishop login --username me@example.com --output json | jq -r .token)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			info := sessionInfo{
				Token:     c.Token().String(),
				AccountID: c.AccountID(),
				ShopID:    c.ShopID(),
				BaseURI:   c.BaseURI(),
			}
			if exp, ok := c.Token().ExpiresAt(); ok {
				info.ExpiresAt = &exp
			}

			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, info)
			}

			tw := newTabWriter(w)
			tw.writef("Token:\t%s\n", info.Token)
			tw.writef("Account:\t%s\n", info.AccountID)
			tw.writef("Shop:\t%s\n", info.ShopID)
			tw.writef("Base URI:\t%s\n", info.BaseURI)
			if info.ExpiresAt != nil {
				tw.writef("Expires:\t%s\n", info.ExpiresAt.Format(time.RFC3339))
			}
			return tw.finish()
		},
	}
}
