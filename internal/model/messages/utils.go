package messages

import (
	"fmt"
	"strconv"
	"strings"

	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/tracker"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return stripBotName(split[0]), split[1]
	}
	if strings.HasPrefix(text, "/") {
		return stripBotName(text), ""
	}
	return "", text
}

// stripBotName turns "/report@tracker_bot" into "/report".
func stripBotName(cmd string) string {
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		return cmd[:i]
	}
	return cmd
}

// splitAmount reads "Dining Out 12.5 rest..." as a multi-word category
// followed by an amount.
func splitAmount(arg string) (category string, amount float64, rest []string, ok bool) {
	args := strings.Fields(arg)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			continue
		}
		if i == 0 {
			return "", 0, nil, false
		}
		return strings.Join(args[:i], " "), v, args[i+1:], true
	}
	return "", 0, nil, false
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	return id, err == nil
}

func looksLikeDate(s string) bool {
	return strings.Count(s, ".") == 2 || strings.Count(s, "-") == 2
}

func parsePatch(args []string) (finance.ExpensePatch, string) {
	var patch finance.ExpensePatch
	for _, a := range args {
		key, value, found := strings.Cut(a, "=")
		if !found || value == "" {
			return patch, incorrectUsageMessage
		}
		value = strings.ReplaceAll(value, "_", " ")
		switch strings.ToLower(key) {
		case "amount":
			v, ok := parseAmount(value)
			if !ok {
				return patch, incorrectAmountMessage
			}
			patch.Amount = &v
		case "category":
			patch.Category = &value
		case "description":
			patch.Description = &value
		case "date":
			d, err := finance.ParseDate(value)
			if err != nil {
				return patch, incorrectDateMessage
			}
			patch.Date = &d
		default:
			return patch, incorrectFieldMessage
		}
	}
	return patch, ""
}

func chatDate(d finance.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(finance.ChatDateLayout)
}

func formatExpenses(expenses []finance.Expense, totals []tracker.CategoryTotal, code string) string {
	res := make([]string, 0, len(expenses)+3)
	total := 0.0
	for _, e := range expenses {
		line := fmt.Sprintf("#%d %s %s: %s", e.ID, chatDate(e.Date), e.Category, currency.Format(e.Amount, code))
		if e.Description != "" {
			line += " (" + e.Description + ")"
		}
		res = append(res, line)
		total = calc.Add(total, e.Amount)
	}
	res = append(res, "", "Total: "+currency.Format(total, code))
	if len(totals) > 0 {
		res = append(res, fmt.Sprintf("Highest: %s (%s)", totals[0].Category, currency.Format(totals[0].Total, code)))
	}
	return strings.Join(res, "\n")
}

func formatBudgets(o tracker.BudgetOverview, code string) string {
	res := make([]string, 0, len(o.Budgets)+3)
	for _, b := range o.Budgets {
		res = append(res, fmt.Sprintf("#%d %s (%s): %s of %s, %.0f%% [%s]",
			b.Budget.ID, b.Budget.Category, b.Budget.Period,
			currency.Format(b.Spent, code), currency.Format(b.Budget.Amount, code),
			b.Progress, b.Status))
	}
	res = append(res, "",
		fmt.Sprintf("Total: %s of %s, %.0f%%",
			currency.Format(o.TotalSpent, code), currency.Format(o.TotalBudget, code), o.Progress),
		"Remaining: "+currency.Format(o.TotalRemaining, code))
	return strings.Join(res, "\n")
}

func formatGoal(g finance.Goal, code string) string {
	p := tracker.NewGoalProgress(g)
	line := fmt.Sprintf("#%d %s: %s of %s (%.0f%%)", g.ID, g.Name,
		currency.Format(g.CurrentAmount, code), currency.Format(g.TargetAmount, code), p.Progress)
	if !g.TargetDate.IsZero() {
		line += " by " + chatDate(g.TargetDate)
	}
	return line
}

func formatGoals(goals []finance.Goal, code string) string {
	res := make([]string, 0, len(goals))
	for _, g := range goals {
		res = append(res, formatGoal(g, code))
	}
	return strings.Join(res, "\n")
}

func formatDashboard(d tracker.Dashboard, code string) string {
	res := []string{
		"Monthly income: " + currency.Format(d.MonthlyIncome, code),
		"Monthly expenses: " + currency.Format(d.MonthlyExpenses, code),
		"Balance: " + currency.Format(d.Balance, code),
	}
	if len(d.RecentExpenses) > 0 {
		res = append(res, "", "Recent expenses:")
		for _, e := range d.RecentExpenses {
			res = append(res, fmt.Sprintf("%s %s: %s", chatDate(e.Date), e.Category, currency.Format(e.Amount, code)))
		}
	}
	if d.PrimaryGoal != nil {
		res = append(res, "", "Goal: "+formatGoal(d.PrimaryGoal.Goal, code))
	}
	return strings.Join(res, "\n")
}

func formatProfile(p tracker.Profile) string {
	return fmt.Sprintf("%s (%s)\nExpenses: %d\nBudgets: %d\nGoals: %d",
		p.User.Name, p.User.Email, p.Expenses, p.Budgets, p.Goals)
}

func formatReport(report *reports.Report) string {
	res := make([]string, 0, len(report.Records)+2)
	for _, rec := range report.Records {
		res = append(res, fmt.Sprintf("%s: %s", rec.Category, currency.Format(rec.Amount, report.Currency)))
	}
	res = append(res, "", "Total: "+currency.Format(report.Total, report.Currency))
	if top, ok := report.Highest(); ok {
		res = append(res, "Highest: "+top.Category)
	}
	return strings.Join(res, "\n")
}
