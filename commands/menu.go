package commands

import (
	"fmt"
	"io"

	"github.com/penwyp/go-pos/internal/application/admin"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/presentation/layout"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/cobra"
)

func newMenuCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse and maintain the menu",
	}
	cmd.AddCommand(
		newMenuListCmd(a),
		newMenuAddCmd(a),
		newMenuEditCmd(a),
		newMenuDeleteCmd(a),
	)
	return cmd
}

func newMenuListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items, optionally for one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.admin.ListMenu(category)
			if err != nil {
				return err
			}
			printMenu(cmd.OutOrStdout(), items, a.cfg.Currency)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category (Food, Drinks, Desserts, Combo Meal, Snacks)")
	return cmd
}

func printMenu(w io.Writer, items []model.MenuItem, currency string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No menu items")
		return
	}

	var z layout.Sizer
	nameWidth := 4
	for _, it := range items {
		nameWidth = max(nameWidth, z.DisplayWidth(it.Name))
	}
	for _, it := range items {
		fmt.Fprintf(w, "%s  %s  %s\n",
			z.PadString(it.Name, nameWidth, true),
			z.PadString(util.FormatCurrency(it.Price, currency), 12, false),
			it.Category)
	}
}

func menuInputFlags(cmd *cobra.Command, in *admin.MenuInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Item name")
	cmd.Flags().StringVar(&in.Price, "price", "", "Price")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
}

func newMenuAddCmd(a *app) *cobra.Command {
	var in admin.MenuInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a menu item (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			item, err := a.admin.AddItem(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Name, util.FormatCurrency(item.Price, a.cfg.Currency))
			return nil
		},
	}
	menuInputFlags(cmd, &in)
	return cmd
}

func newMenuEditCmd(a *app) *cobra.Command {
	var in admin.MenuInput
	cmd := &cobra.Command{
		Use:   "edit <item>",
		Short: "Edit a menu item (admin); omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			item, err := a.admin.EditItem(args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s -> %s (%s, %s)\n",
				args[0], item.Name, util.FormatCurrency(item.Price, a.cfg.Currency), item.Category)
			return nil
		},
	}
	menuInputFlags(cmd, &in)
	return cmd
}

func newMenuDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item>",
		Short: "Delete a menu item (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.login(model.RoleAdmin); err != nil {
				return err
			}
			if err := a.admin.DeleteItem(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
