package commands

import (
	"fmt"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show the notifications for the logged-in role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.loginAny()
			if err != nil {
				return err
			}
			mailbox := a.customerMail
			if sess.Role == model.RoleAdmin {
				mailbox = a.adminMail
			}
			msgs, err := mailbox.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, "No notifications")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}
}

func newSalesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "Show the sales ledger (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			sales, err := a.sales.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := decimal.Zero
			for _, s := range sales {
				fmt.Fprintf(out, "%-24s %s\n", s.Customer, util.FormatCurrency(s.Total, a.cfg.Currency))
				total = total.Add(s.Total)
			}
			fmt.Fprintf(out, "%d sales, total %s\n", len(sales), util.FormatCurrency(total, a.cfg.Currency))
			return nil
		},
	}
}

func newTransactionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "Print the stored receipts (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			lines, err := a.journal.Lines()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, "No transactions")
				return nil
			}
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			return nil
		},
	}
}
