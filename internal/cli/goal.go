package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/tracker"
)

func (a *app) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Save towards goals",
	}
	cmd.AddCommand(a.goalAddCmd(), a.goalListCmd(), a.goalFundCmd(), a.goalRmCmd())
	return cmd
}

func (a *app) goalAddCmd() *cobra.Command {
	var (
		current    float64
		targetDate string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			g := finance.Goal{Name: args[0], TargetAmount: target, CurrentAmount: current}
			if targetDate != "" {
				if g.TargetDate, err = finance.ParseDate(targetDate); err != nil {
					return err
				}
			}

			stored, err := a.ws.Tracker.AddGoal(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Added goal %d: %s\n", stored.ID, stored.Name)
			return nil
		},
	}
	cmd.Flags().Float64Var(&current, "current", 0, "Amount already saved")
	cmd.Flags().StringVar(&targetDate, "by", "", "Target date as YYYY-MM-DD")
	return cmd
}

func (a *app) goalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show goals and their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goals, err := a.ws.Tracker.Goals(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(w, "  No goals found.")
				return nil
			}
			for _, g := range goals {
				a.printGoal(w, tracker.NewGoalProgress(g))
			}
			return nil
		},
	}
}

func (a *app) goalFundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <id> <amount>",
		Short: "Add savings to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			g, ok, err := a.ws.Tracker.AddFunds(cmd.Context(), id, amount)
			if err != nil {
				return err
			}
			if !ok {
				return customerr.ErrNotFound
			}
			a.printGoal(cmd.OutOrStdout(), tracker.NewGoalProgress(g))
			return nil
		},
	}
}

func (a *app) goalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.ws.Tracker.DeleteGoal(cmd.Context(), id)
			return removed(cmd.OutOrStdout(), ok, err)
		},
	}
}

func (a *app) printGoal(w io.Writer, p tracker.GoalProgress) {
	fmt.Fprintf(w, "  %-14d %-20s %14s of %14s  %5.1f%%",
		p.Goal.ID, p.Goal.Name, a.money(p.Goal.CurrentAmount), a.money(p.Goal.TargetAmount), p.Progress)
	if !p.Goal.TargetDate.IsZero() {
		fmt.Fprintf(w, "  by %s", p.Goal.TargetDate)
	}
	fmt.Fprintln(w)
}
