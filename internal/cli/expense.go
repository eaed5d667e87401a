package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

func (a *app) expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record and review expenses",
	}
	cmd.AddCommand(a.expenseAddCmd(), a.expenseListCmd(), a.expenseEditCmd(), a.expenseRmCmd(), categoriesCmd())
	return cmd
}

func (a *app) expenseAddCmd() *cobra.Command {
	var date, description string

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Record an expense",
		Long:  "Record an expense. Categories are free-form, common ones are: " + strings.Join(finance.DefaultCategories, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			e := finance.Expense{Category: args[0], Amount: amount, Description: description}
			if date != "" {
				if e.Date, err = finance.ParseDate(date); err != nil {
					return err
				}
			}

			stored, err := a.ws.Tracker.AddExpense(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Added expense %d: %s %s\n", stored.ID, stored.Category, a.money(stored.Amount))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD, today when empty")
	cmd.Flags().StringVarP(&description, "description", "m", "", "What it was for")
	return cmd
}

func (a *app) expenseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, err := a.ws.Tracker.Expenses(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(w, "  No expenses found.")
				return nil
			}

			total := 0.0
			for _, e := range expenses {
				fmt.Fprintf(w, "  %-14d %-10s %-16s %14s  %s\n",
					e.ID, e.Date, e.Category, a.money(e.Amount), e.Description)
				total = calc.Add(total, e.Amount)
			}
			fmt.Fprintf(w, "\n  Total: %s\n", a.money(total))

			totals, err := a.ws.Tracker.CategoryTotals(cmd.Context())
			if err != nil {
				return err
			}
			if len(totals) > 0 {
				fmt.Fprintf(w, "  Highest: %s (%s)\n", totals[0].Category, a.money(totals[0].Total))
			}
			return nil
		},
	}
}

func (a *app) expenseEditCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch finance.ExpensePatch
			flags := cmd.Flags()
			if flags.Changed("amount") {
				patch.Amount = &amount
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("date") {
				d, err := finance.ParseDate(date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}

			e, ok, err := a.ws.Tracker.EditExpense(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			if !ok {
				return customerr.ErrNotFound
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Updated expense %d: %s %s\n", e.ID, e.Category, a.money(e.Amount))
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "New amount")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVarP(&description, "description", "m", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "New date as YYYY-MM-DD")
	return cmd
}

func (a *app) expenseRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.ws.Tracker.DeleteExpense(cmd.Context(), id)
			return removed(cmd.OutOrStdout(), ok, err)
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List common expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range finance.DefaultCategories {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+c)
			}
			return nil
		},
	}
}
