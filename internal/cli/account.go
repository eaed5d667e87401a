package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

func (a *app) signupCmd() *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a local account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ws.Auth.Signup(cmd.Context(), name, email, password, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Welcome, %s!\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 8 characters")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password again")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in with a local account or the demo credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := a.ws.Auth.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return customerr.ErrInvalidCredentials
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Welcome back, %s!\n", p.Name)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ws.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "  Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ws.Auth.Session().Require(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s <%s>\n", p.Name, p.Email)
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the account and what it keeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ws.Tracker.Profile(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  Name:     %s\n", p.User.Name)
			fmt.Fprintf(w, "  Email:    %s\n", p.User.Email)
			fmt.Fprintf(w, "  Expenses: %d\n", p.Expenses)
			fmt.Fprintf(w, "  Budgets:  %d\n", p.Budgets)
			fmt.Fprintf(w, "  Goals:    %d\n", p.Goals)
			return nil
		},
	}
}
