package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

func (a *app) budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Plan spending per category",
	}
	cmd.AddCommand(a.budgetAddCmd(), a.budgetListCmd(), a.budgetRmCmd())
	return cmd
}

func (a *app) budgetAddCmd() *cobra.Command {
	var (
		period        string
		notifications bool
	)

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add a budget for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			b, err := a.ws.Tracker.AddBudget(cmd.Context(), finance.Budget{
				Category:      args[0],
				Amount:        amount,
				Period:        finance.Period(period),
				Notifications: notifications,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Added budget %d: %s %s %s\n", b.ID, b.Category, a.money(b.Amount), b.Period)
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", string(finance.Monthly), "daily, weekly, monthly or yearly")
	cmd.Flags().BoolVar(&notifications, "notify", true, "Keep notifications on for this budget")
	return cmd
}

func (a *app) budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budgets with what was spent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.ws.Tracker.BudgetOverview(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(o.Budgets) == 0 {
				fmt.Fprintln(w, "  No budgets found.")
				return nil
			}

			for _, b := range o.Budgets {
				fmt.Fprintf(w, "  %-14d %-16s %-8s %14s of %14s  %5.1f%%  %s\n",
					b.Budget.ID, b.Budget.Category, b.Budget.Period,
					a.money(b.Spent), a.money(b.Budget.Amount), b.Progress, b.Status)
			}
			fmt.Fprintf(w, "\n  Total:     %s of %s (%.1f%%)\n", a.money(o.TotalSpent), a.money(o.TotalBudget), o.Progress)
			fmt.Fprintf(w, "  Remaining: %s\n", a.money(o.TotalRemaining))
			return nil
		},
	}
}

func (a *app) budgetRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.ws.Tracker.DeleteBudget(cmd.Context(), id)
			return removed(cmd.OutOrStdout(), ok, err)
		},
	}
}
