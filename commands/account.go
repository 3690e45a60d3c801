package commands

import (
	"fmt"

	"github.com/penwyp/go-pos/internal/application/account"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/spf13/cobra"
)

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Register, log in and manage customer accounts",
	}
	cmd.AddCommand(
		newAccountRegisterCmd(a),
		newAccountLoginCmd(a),
		newAccountUpdateCmd(a),
		newAccountShowCmd(a),
	)
	return cmd
}

type profileFlags struct {
	first, middle, last string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.first, "first", "", "First name")
	cmd.Flags().StringVar(&p.middle, "middle", "", "Middle name")
	cmd.Flags().StringVar(&p.last, "last", "", "Last name")
}

func newAccountRegisterCmd(a *app) *cobra.Command {
	var (
		confirm string
		profile profileFlags
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.password("Password: ")
			if err != nil {
				return err
			}
			if confirm == "" {
				if confirm, err = passwordReader("Confirm password: "); err != nil {
					return err
				}
			}

			if err := a.accounts.Register(account.RegisterRequest{
				Username:   a.flags.user,
				Password:   pw,
				Confirm:    confirm,
				FirstName:  profile.first,
				MiddleName: profile.middle,
				LastName:   profile.last,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", a.flags.user)
			return nil
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (prompted when omitted)")
	profile.register(cmd)
	return cmd
}

func newAccountLoginCmd(a *app) *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role := model.RoleCustomer
			if admin {
				role = model.RoleAdmin
			}
			sess, err := a.login(role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Username, sess.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "Log in as the administrator")
	return cmd
}

func newAccountUpdateCmd(a *app) *cobra.Command {
	var (
		newUsername string
		newPassword string
		profile     profileFlags
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the logged-in customer's username, password or profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.login(model.RoleCustomer)
			if err != nil {
				return err
			}
			if newUsername == "" {
				newUsername = sess.Username
			}

			name, err := a.accounts.Update(account.UpdateRequest{
				CurrentUsername: sess.Username,
				NewUsername:     newUsername,
				NewPassword:     newPassword,
				FirstName:       profile.first,
				MiddleName:      profile.middle,
				LastName:        profile.last,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account updated for user: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&newUsername, "new-username", "", "New username")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password")
	profile.register(cmd)
	return cmd
}

func newAccountShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in customer's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.login(model.RoleCustomer)
			if err != nil {
				return err
			}
			p, found, err := a.accounts.Profile(sess.Username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username: %s\n", sess.Username)
			if !found {
				fmt.Fprintln(out, "No profile on file")
				return nil
			}
			fmt.Fprintf(out, "Name: %s\n", p.FullName())
			return nil
		},
	}
}
