package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"max.ks1230/finance-tracker/internal/model/reports"
)

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Monthly overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.ws.Tracker.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  Monthly income:   %s\n", a.money(d.MonthlyIncome))
			fmt.Fprintf(w, "  Monthly expenses: %s\n", a.money(d.MonthlyExpenses))
			fmt.Fprintf(w, "  Balance:          %s\n", a.money(d.Balance))

			if len(d.RecentExpenses) > 0 {
				fmt.Fprintln(w, "\n  Recent expenses")
				for _, e := range d.RecentExpenses {
					fmt.Fprintf(w, "    %-10s %-16s %14s\n", e.Date, e.Category, a.money(e.Amount))
				}
			}
			if d.PrimaryGoal != nil {
				fmt.Fprintln(w, "\n  Goal")
				a.printGoal(w, *d.PrimaryGoal)
			}
			return nil
		},
	}
}

func (a *app) reportCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.ws.Reports.GenerateReport(cmd.Context(), period)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if report.Empty() {
				fmt.Fprintln(w, "  Nothing was spent in this period.")
				return nil
			}
			for _, rec := range report.Records {
				fmt.Fprintf(w, "  %-16s %14s\n", rec.Category, a.money(rec.Amount))
			}
			fmt.Fprintf(w, "\n  %-16s %14s\n", "Total", a.money(report.Total))
			if top, ok := report.Highest(); ok {
				fmt.Fprintf(w, "  Highest: %s\n", top.Category)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "",
		"One of "+strings.Join(reports.ReportPeriods(), ", ")+"; all time when empty")
	return cmd
}
