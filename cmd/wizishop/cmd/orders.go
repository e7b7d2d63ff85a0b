package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

func ordersCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orders",
		Short: "Manage orders",
	}

	root.AddCommand(
		orderListCmd(),
		orderGetCmd(),
		orderDocumentCmd("invoice", "Download the invoice PDF", (*wizishop.Client).GetOrderInvoice),
		orderDocumentCmd("picking-slip", "Download the picking slip PDF", (*wizishop.Client).GetOrderPickingSlip),
		orderDocumentCmd("delivery-slip", "Download the delivery slip PDF", (*wizishop.Client).GetOrderDeliverySlip),
		orderStatusCmd(),
		orderShipCmd(),
		orderStatusesCmd(),
		orderCustomStateCmd(),
	)

	return root
}

// parseOrderDate accepts the API layout, RFC 3339 or a bare date.
func parseOrderDate(s string) (time.Time, error) {
	for _, layout := range []string{wizishop.DateLayout, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or %q", s, wizishop.DateLayout)
}

func orderListCmd() *cobra.Command {
	var (
		lf     listFlags
		status int
		since  string
		until  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Example: `  wizishop orders list --status 20
  wizishop orders list --since 2024-01-01 --until "2024-01-31 23:59:59"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := lf.values()
			if err != nil {
				return err
			}
			f := wizishop.OrderFilter{Params: q}
			if cmd.Flags().Changed("status") {
				f = f.WithStatusCode(status)
			}
			if since != "" {
				if f.StartDate, err = parseOrderDate(since); err != nil {
					return err
				}
			}
			if until != "" {
				if f.EndDate, err = parseOrderDate(until); err != nil {
					return err
				}
			}

			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			orders, err := c.ListOrders(cmd.Context(), f)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, orders)
			}
			if len(orders) == 0 {
				_, err := fmt.Fprintln(w, "No orders found.")
				return err
			}
			return printOrderTable(w, orders)
		},
	}
	lf.register(cmd)
	cmd.Flags().IntVar(&status, "status", 0, "status code filter (0-50)")
	cmd.Flags().StringVar(&since, "since", "", "orders created at or after this date")
	cmd.Flags().StringVar(&until, "until", "", "orders created at or before this date")
	return cmd
}

func orderGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an order",
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
			o, err := c.GetOrder(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if o == nil {
				return fmt.Errorf("order %d not found", id)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), o)
			}
			return printOrderDetail(cmd.OutOrStdout(), o)
		},
	}
}

type documentFunc func(*wizishop.Client, context.Context, int64, url.Values) ([]byte, error)

func orderDocumentCmd(name, short string, get documentFunc) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     name + " <id>",
		Short:   short,
		Example: fmt.Sprintf("  wizishop orders %s 1001 --out %s-1001.pdf", name, name),
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
			doc, err := get(c, cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("order %d has no %s", id, name)
			}
			if out == "" {
				out = fmt.Sprintf("%s-%d.pdf", name, id)
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(out, doc, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes).\n", out, len(doc))
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "", `output file ("-" for stdout)`)
	return cmd
}

func orderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to another status",
		Long: "Move an order to another status. Run 'wizishop orders statuses' for the\n" +
			"list of accepted slugs. Use 'wizishop orders ship' to mark an order as sent.",
		Example: `  wizishop orders status 1001 preparing`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			o, err := c.SetOrderStatus(cmd.Context(), id, wizishop.OrderStatus(args[1]))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), o)
			}
			return printOrderDetail(cmd.OutOrStdout(), o)
		},
	}
}

// parseTracking parses "shipping_id=tracking_number" pairs.
func parseTracking(pairs []string) ([]wizishop.TrackingNumber, error) {
	out := make([]wizishop.TrackingNumber, 0, len(pairs))
	for _, p := range pairs {
		id, number, ok := strings.Cut(p, "=")
		if !ok || number == "" {
			return nil, fmt.Errorf("invalid --tracking %q: expected shipping_id=number", p)
		}
		shippingID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --tracking %q: shipping id: %w", p, err)
		}
		out = append(out, wizishop.TrackingNumber{ShippingID: shippingID, TrackingNumber: number})
	}
	return out, nil
}

func orderShipCmd() *cobra.Command {
	var tracking []string

	cmd := &cobra.Command{
		Use:     "ship <id>",
		Short:   "Mark an order as sent",
		Example: `  wizishop orders ship 1001 --tracking 77=6A12345678901`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			numbers, err := parseTracking(tracking)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			o, err := c.ShipOrder(cmd.Context(), id, numbers)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), o)
			}
			return printOrderDetail(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringArrayVar(&tracking, "tracking", nil, "tracking number (shipping_id=number), repeatable")
	return cmd
}

func orderStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List order status slugs and codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("CODE\tSTATUS\n")
			tw.writef("%d\t%s\n", wizishop.StatusCodeAbandoned, "(abandoned)")
			for _, s := range wizishop.OrderStatuses() {
				code, _ := s.Code()
				tw.writef("%d\t%s\n", code, s)
			}
			return tw.finish()
		},
	}
}

func orderCustomStateCmd() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:     "custom-state",
		Short:   "Create a shop specific order state",
		Example: `  wizishop orders custom-state --field name="Awaiting pickup" --field color=#ff9900`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(file, pairs)
			if err != nil {
				return err
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			state, err := c.CreateOrderCustomState(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), state)
		},
	}
	payloadFlags(cmd, &file, &pairs)
	return cmd
}
