// Package cli implements the tracker command line over a local workspace.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/workspace"
)

// Opener provides the workspace for one command run and a func releasing it.
type Opener func() (*workspace.Workspace, func(), error)

type app struct {
	open  Opener
	ws    *workspace.Workspace
	close func()
}

// NewRootCmd builds the command tree. The workspace is opened before a
// subcommand runs and released after it, whatever the outcome.
func NewRootCmd(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Personal finance tracker",
		Long:          "Track expenses, budgets and savings goals stored on this machine.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.profileCmd(),
		a.expenseCmd(),
		a.budgetCmd(),
		a.goalCmd(),
		a.dashboardCmd(),
		a.reportCmd(),
	)
	a.withWorkspace(root)
	return root
}

// Execute runs the tree and turns errors into a message for the user.
func Execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "  Error: "+Explain(err))
	return 1
}

// Explain maps domain errors to what the user should read.
func Explain(err error) string {
	switch {
	case errors.Is(err, customerr.ErrNotLoggedIn):
		return "not logged in, run `tracker login` or `tracker signup` first"
	case errors.Is(err, customerr.ErrEmailTaken):
		return "an account with this email already exists"
	case errors.Is(err, customerr.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, customerr.ErrNotFound):
		return "nothing found with this id"
	case customerr.IsValidation(err):
		return customerr.ValidationMessage(err)
	case customerr.IsWriteFailure(err):
		return "could not save, nothing was changed: " + err.Error()
	}
	return err.Error()
}

func (a *app) withWorkspace(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			if err := a.openWorkspace(); err != nil {
				return err
			}
			defer a.release()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		a.withWorkspace(sub)
	}
}

func (a *app) openWorkspace() error {
	if a.ws != nil {
		return nil
	}
	ws, closeFn, err := a.open()
	if err != nil {
		return errors.Wrap(err, "open workspace")
	}
	a.ws, a.close = ws, closeFn
	return nil
}

func (a *app) release() {
	if a.close != nil {
		a.close()
	}
	a.ws, a.close = nil, nil
}

func (a *app) money(amount float64) string {
	return currency.Format(amount, a.ws.Currency)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, customerr.Invalid("id", fmt.Sprintf("%q is not a valid id", s))
	}
	return id, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, customerr.Invalid("amount", fmt.Sprintf("%q is not a number", s))
	}
	return v, nil
}

// removed reports the outcome of a delete the way every rm subcommand does.
func removed(w io.Writer, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return customerr.ErrNotFound
	}
	fmt.Fprintln(w, "  Removed.")
	return nil
}
