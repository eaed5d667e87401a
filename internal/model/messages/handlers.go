package messages

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/workspace"
	"max.ks1230/finance-tracker/internal/utils"
)

const (
	dontUnderstandMessage = "I don't understand you :( Try /help"
	helloMessage          = "Hello! I am your personal finance tracker 🤖"
	loveToTalkMessage     = "I would love to talk about it more! Try /help"
	okMessage             = "Gotcha!"
	loggedOutMessage      = "You are logged out"
	noExpensesMessage     = "You have no expenses yet"
	noBudgetsMessage      = "You have no budgets yet"
	noGoalsMessage        = "You have no goals yet"
	noReportDataMessage   = "Nothing was spent in this period"

	notLoggedInMessage       = "Please /login or /signup first"
	wrongCredentialsMessage  = "Invalid email or password"
	emailTakenMessage        = "An account with this email already exists"
	notFoundMessage          = "Nothing found with this id"
	incorrectUsageMessage    = "That is an incorrect command usage"
	incorrectAmountMessage   = "The amount is incorrect"
	incorrectIDMessage       = "The id is incorrect"
	incorrectDateMessage     = "The date is incorrect. Should be dd.mm.yyyy"
	incorrectFieldMessage    = "Unknown field. Use amount, category, description or date"
	cannotLoadMessage        = "Can't load your data atm. Try later"
	cannotSaveMessage        = "Can't save your changes atm. Nothing was changed"
	somethingWentWrongPrefix = "Sorry, something wrong happened...\n"
)

const helpMessage = `Account:
/signup email password confirm Your Name
/login email password
/logout, /whoami, /profile

Expenses:
/expense category amount [dd.mm.yyyy] [description]
/expenses
/categories
/editexpense id amount=10 category=Food description=text date=dd.mm.yyyy
/delexpense id

Budgets:
/budget category amount [daily|weekly|monthly|yearly]
/budgets
/delbudget id

Goals:
/goal target name
/goals
/fund id amount
/delgoal id

Overview:
/dashboard
/report [week|month|year]`

const (
	startCommand       = "/start"
	helpCommand        = "/help"
	signupCommand      = "/signup"
	loginCommand       = "/login"
	logoutCommand      = "/logout"
	whoamiCommand      = "/whoami"
	profileCommand     = "/profile"
	expenseCommand     = "/expense"
	expensesCommand    = "/expenses"
	categoriesCommand  = "/categories"
	editExpenseCommand = "/editexpense"
	delExpenseCommand  = "/delexpense"
	budgetCommand      = "/budget"
	budgetsCommand     = "/budgets"
	delBudgetCommand   = "/delbudget"
	goalCommand        = "/goal"
	goalsCommand       = "/goals"
	fundCommand        = "/fund"
	delGoalCommand     = "/delgoal"
	dashboardCommand   = "/dashboard"
	reportCommand      = "/report"
)

var commands = []string{
	startCommand, helpCommand, signupCommand, loginCommand, logoutCommand,
	whoamiCommand, profileCommand, expenseCommand, expensesCommand, categoriesCommand,
	editExpenseCommand, delExpenseCommand, budgetCommand, budgetsCommand,
	delBudgetCommand, goalCommand, goalsCommand, fundCommand, delGoalCommand,
	dashboardCommand, reportCommand,
}

// commandLabel keeps metric and span labels to the known commands.
func commandLabel(cmd string) string {
	switch {
	case cmd == "":
		return "text"
	case utils.Contains(commands, cmd):
		return cmd
	}
	return "other"
}

type workspaces interface {
	For(chatID int64) *workspace.Workspace
}

type handler func(ctx context.Context, ws *workspace.Workspace, arg string) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	workspaces  workspaces
}

func newHandler(workspaces workspaces) *HandlerService {
	res := &HandlerService{
		workspaces: workspaces,
	}
	res.handlersMap = newMap(res)
	return res
}

// HandleMessage answers one chat message. User mistakes are answered
// without an error, the error is kept for failures of the storage.
func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, arg := parseCommand(text)

	h, ok := s.handlersMap[cmd]
	if !ok {
		return dontUnderstandMessage, nil
	}
	resp, err := h(ctx, s.workspaces.For(userID), arg)
	if err != nil {
		return explain(err)
	}
	return resp, nil
}

func explain(err error) (string, error) {
	switch {
	case errors.Is(err, customerr.ErrNotLoggedIn):
		return notLoggedInMessage, nil
	case errors.Is(err, customerr.ErrEmailTaken):
		return emailTakenMessage, nil
	case errors.Is(err, customerr.ErrNotFound):
		return notFoundMessage, nil
	case customerr.IsValidation(err):
		return customerr.ValidationMessage(err), nil
	case customerr.IsWriteFailure(err):
		return cannotSaveMessage, err
	}
	return cannotLoadMessage, err
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[signupCommand] = s.handleSignup
	m[loginCommand] = s.handleLogin
	m[logoutCommand] = s.handleLogout
	m[whoamiCommand] = s.handleWhoami
	m[profileCommand] = s.handleProfile
	m[expenseCommand] = s.handleExpense
	m[expensesCommand] = s.handleExpenses
	m[categoriesCommand] = s.handleCategories
	m[editExpenseCommand] = s.handleEditExpense
	m[delExpenseCommand] = s.handleDeleteExpense
	m[budgetCommand] = s.handleBudget
	m[budgetsCommand] = s.handleBudgets
	m[delBudgetCommand] = s.handleDeleteBudget
	m[goalCommand] = s.handleGoal
	m[goalsCommand] = s.handleGoals
	m[fundCommand] = s.handleFund
	m[delGoalCommand] = s.handleDeleteGoal
	m[dashboardCommand] = s.handleDashboard
	m[reportCommand] = s.handleReport

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ *workspace.Workspace, _ string) (string, error) {
	return helloMessage + "\n\n" + helpMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ *workspace.Workspace, _ string) (string, error) {
	return helpMessage, nil
}

func (s *HandlerService) handleCategories(_ context.Context, _ *workspace.Workspace, _ string) (string, error) {
	return "Common categories, any other name works too:\n" + strings.Join(finance.DefaultCategories, "\n"), nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ *workspace.Workspace, _ string) (string, error) {
	return loveToTalkMessage, nil
}

func (s *HandlerService) handleSignup(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 4 {
		return incorrectUsageMessage, nil
	}
	p, err := ws.Auth.Signup(ctx, strings.Join(args[3:], " "), args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	return "Welcome, " + p.Name + "!", nil
}

func (s *HandlerService) handleLogin(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	p, ok, err := ws.Auth.Login(ctx, args[0], args[1])
	if err != nil {
		return "", err
	}
	if !ok {
		return wrongCredentialsMessage, nil
	}
	return "Welcome back, " + p.Name + "!", nil
}

func (s *HandlerService) handleLogout(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	if err := ws.Auth.Logout(ctx); err != nil {
		return "", err
	}
	return loggedOutMessage, nil
}

func (s *HandlerService) handleWhoami(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	p, err := ws.Auth.Session().Require(ctx)
	if err != nil {
		return "", err
	}
	return "Logged in as " + p.Name + " (" + p.Email + ")", nil
}

func (s *HandlerService) handleProfile(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	p, err := ws.Tracker.Profile(ctx)
	if err != nil {
		return "", err
	}
	return formatProfile(p), nil
}

func (s *HandlerService) handleExpense(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	category, amount, rest, ok := splitAmount(arg)
	if !ok {
		return incorrectUsageMessage, nil
	}
	if amount <= 0 {
		return incorrectAmountMessage, nil
	}

	expense := finance.Expense{Amount: amount, Category: category}
	if len(rest) > 0 {
		if date, err := finance.ParseDate(rest[0]); err == nil {
			expense.Date = date
			rest = rest[1:]
		} else if looksLikeDate(rest[0]) {
			return incorrectDateMessage, nil
		}
	}
	expense.Description = strings.Join(rest, " ")

	if _, err := ws.Tracker.AddExpense(ctx, expense); err != nil {
		return "", err
	}
	return okMessage, nil
}

func (s *HandlerService) handleExpenses(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	expenses, err := ws.Tracker.Expenses(ctx)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return noExpensesMessage, nil
	}
	totals, err := ws.Tracker.CategoryTotals(ctx)
	if err != nil {
		return "", err
	}
	return formatExpenses(expenses, totals, ws.Currency), nil
}

func (s *HandlerService) handleEditExpense(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectUsageMessage, nil
	}
	id, ok := parseID(args[0])
	if !ok {
		return incorrectIDMessage, nil
	}
	patch, msg := parsePatch(args[1:])
	if msg != "" {
		return msg, nil
	}

	_, found, err := ws.Tracker.EditExpense(ctx, id, patch)
	if err != nil {
		return "", err
	}
	if !found {
		return notFoundMessage, nil
	}
	return okMessage, nil
}

func (s *HandlerService) handleDeleteExpense(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	return s.remove(ctx, arg, ws.Tracker.DeleteExpense)
}

func (s *HandlerService) handleBudget(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	category, amount, rest, ok := splitAmount(arg)
	if !ok || len(rest) > 1 {
		return incorrectUsageMessage, nil
	}
	budget := finance.Budget{Category: category, Amount: amount, Notifications: true}
	if len(rest) == 1 {
		budget.Period = finance.Period(rest[0])
	}

	if _, err := ws.Tracker.AddBudget(ctx, budget); err != nil {
		return "", err
	}
	return okMessage, nil
}

func (s *HandlerService) handleBudgets(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	overview, err := ws.Tracker.BudgetOverview(ctx)
	if err != nil {
		return "", err
	}
	if len(overview.Budgets) == 0 {
		return noBudgetsMessage, nil
	}
	return formatBudgets(overview, ws.Currency), nil
}

func (s *HandlerService) handleDeleteBudget(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	return s.remove(ctx, arg, ws.Tracker.DeleteBudget)
}

func (s *HandlerService) handleGoal(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectUsageMessage, nil
	}
	target, ok := parseAmount(args[0])
	if !ok {
		return incorrectAmountMessage, nil
	}

	goal := finance.Goal{TargetAmount: target, Name: strings.Join(args[1:], " ")}
	if _, err := ws.Tracker.AddGoal(ctx, goal); err != nil {
		return "", err
	}
	return okMessage, nil
}

func (s *HandlerService) handleGoals(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	goals, err := ws.Tracker.Goals(ctx)
	if err != nil {
		return "", err
	}
	if len(goals) == 0 {
		return noGoalsMessage, nil
	}
	return formatGoals(goals, ws.Currency), nil
}

func (s *HandlerService) handleFund(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	id, ok := parseID(args[0])
	if !ok {
		return incorrectIDMessage, nil
	}
	amount, ok := parseAmount(args[1])
	if !ok {
		return incorrectAmountMessage, nil
	}

	g, found, err := ws.Tracker.AddFunds(ctx, id, amount)
	if err != nil {
		return "", err
	}
	if !found {
		return notFoundMessage, nil
	}
	return formatGoal(g, ws.Currency), nil
}

func (s *HandlerService) handleDeleteGoal(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	return s.remove(ctx, arg, ws.Tracker.DeleteGoal)
}

func (s *HandlerService) handleDashboard(ctx context.Context, ws *workspace.Workspace, _ string) (string, error) {
	d, err := ws.Tracker.Dashboard(ctx)
	if err != nil {
		return "", err
	}
	return formatDashboard(d, ws.Currency), nil
}

func (s *HandlerService) handleReport(ctx context.Context, ws *workspace.Workspace, arg string) (string, error) {
	report, err := ws.Reports.GenerateReport(ctx, strings.ToLower(strings.TrimSpace(arg)))
	if err != nil {
		return "", err
	}
	if report.Empty() {
		return noReportDataMessage, nil
	}
	return formatReport(report), nil
}

func (s *HandlerService) remove(ctx context.Context, arg string, del func(context.Context, int64) (bool, error)) (string, error) {
	id, ok := parseID(strings.TrimSpace(arg))
	if !ok {
		return incorrectIDMessage, nil
	}
	removed, err := del(ctx, id)
	if err != nil {
		return "", err
	}
	if !removed {
		return notFoundMessage, nil
	}
	return okMessage, nil
}
