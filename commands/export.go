package commands

import (
	"fmt"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/export"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the order logs into a SQLite database (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			orders, err := a.orders.ReadAllOrders()
			if err != nil {
				return err
			}
			lines, err := a.orders.ReadAllOrderLines()
			if err != nil {
				return err
			}

			path := util.ExpandPath(outPath)
			counts, err := export.NewSQLiteExporter(path, force).Export(cmd.Context(), orders, lines)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d orders and %d order lines to %s\n", counts.Orders, counts.Lines, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "pos.db", "Database file to create")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing database file")
	return cmd
}
