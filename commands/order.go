package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-pos/internal/application/checkout"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/cobra"
)

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place, list and acknowledge orders",
	}
	cmd.AddCommand(
		newOrderPlaceCmd(a),
		newOrderListCmd(a),
		newOrderReceiveCmd(a),
		newOrderHistoryCmd(a),
		newOrderItemsCmd(a),
	)
	return cmd
}

// parseItemRequests turns NAME[=QTY] arguments into item requests.
func parseItemRequests(args []string) ([]checkout.ItemRequest, error) {
	reqs := make([]checkout.ItemRequest, 0, len(args))
	for _, raw := range args {
		name, qtyText, hasQty := strings.Cut(raw, "=")
		qty := 1
		if hasQty {
			n, err := strconv.Atoi(strings.TrimSpace(qtyText))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", checkout.ErrInvalidQty, raw)
			}
			qty = n
		}
		reqs = append(reqs, checkout.ItemRequest{Name: strings.TrimSpace(name), Qty: qty})
	}
	return reqs, nil
}

func newOrderPlaceCmd(a *app) *cobra.Command {
	var items []string
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Check out a bag of menu items (customer)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.login(model.RoleCustomer)
			if err != nil {
				return err
			}
			reqs, err := parseItemRequests(items)
			if err != nil {
				return err
			}
			bag, err := checkout.FillBag(a.menu, reqs)
			if err != nil {
				return err
			}

			receipt, err := a.checkout.Finish(sess.Username, bag)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), receipt.Text)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "Item to order as NAME or NAME=QTY (repeatable)")
	return cmd
}

func printOrders(w io.Writer, orders []model.OrderRecord, currency string) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders")
		return
	}
	for i, o := range orders {
		fmt.Fprintf(w, "%3d  %s  %-20s %s\n", i+1, o.Timestamp, o.Customer, util.FormatCurrency(o.Total, currency))
	}
}

func newOrderListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every order (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			orders, err := a.admin.Orders()
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), orders, a.cfg.Currency)
			return nil
		},
	}
}

func newOrderReceiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "receive <number>",
		Short: "Mark the order with the number shown by 'order list' as received (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("order number must be an integer: %q", args[0])
			}
			o, err := a.admin.MarkReceived(n - 1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked order as received for %s (%s) at %s\n",
				o.Customer, util.FormatCurrency(o.Total, a.cfg.Currency), o.Timestamp)
			return nil
		},
	}
}

func newOrderHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the logged-in customer's orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.login(model.RoleCustomer)
			if err != nil {
				return err
			}
			orders, err := a.orders.OrdersFor(sess.Username)
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), orders, a.cfg.Currency)
			return nil
		},
	}
}

func newOrderItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "items <timestamp>",
		Short: "Show the lines of the order placed at timestamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loginAny(); err != nil {
				return err
			}
			lines, err := a.orders.LinesFor(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintf(out, "No items for %s\n", args[0])
				return nil
			}
			for _, l := range lines {
				fmt.Fprintf(out, "%s x%d - %s\n", l.Item, l.Qty, util.FormatCurrency(l.LineTotal, a.cfg.Currency))
			}
			return nil
		},
	}
}
