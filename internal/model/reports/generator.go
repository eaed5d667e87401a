package reports

import (
	"context"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/calc"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

var reportPeriods = map[string]func(*now.Now) time.Time{
	"":      func(*now.Now) time.Time { return time.Time{} },
	"week":  (*now.Now).BeginningOfWeek,
	"month": (*now.Now).BeginningOfMonth,
	"year":  (*now.Now).BeginningOfYear,
}

//go:generate minimock -i expensesSource -o ./mock/ -s _mock.go
//go:generate minimock -i config -o ./mock/ -s _mock.go

type expensesSource interface {
	Expenses(ctx context.Context) ([]finance.Expense, error)
}

type config interface {
	BaseCurrency() string
}

type Record struct {
	Category string
	Amount   float64
}

// Report is spending per category, largest first.
type Report struct {
	Period   string
	Since    time.Time
	Currency string
	Records  []Record
	Total    float64
}

func (r *Report) Empty() bool {
	return len(r.Records) == 0
}

// Highest is the category with the largest spending.
func (r *Report) Highest() (Record, bool) {
	if r.Empty() {
		return Record{}, false
	}
	return r.Records[0], true
}

type Generator struct {
	source   expensesSource
	currency string
	clock    func() time.Time
}

func NewGenerator(config config, source expensesSource) *Generator {
	return &Generator{
		source:   source,
		currency: config.BaseCurrency(),
		clock:    time.Now,
	}
}

func (g *Generator) WithClock(clock func() time.Time) *Generator {
	g.clock = clock
	return g
}

// GenerateReport groups expenses dated within the period. An empty period
// covers all time.
func (g *Generator) GenerateReport(ctx context.Context, period string) (*Report, error) {
	logger.Info("GenerateReport - start", zap.String("period", period))
	defer logger.Info("GenerateReport - end")

	start, ok := reportPeriods[period]
	if !ok {
		return nil, customerr.Invalid("period", "Report period must be week, month or year")
	}

	expenses, err := g.source.Expenses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "generate report")
	}

	since := start(now.With(g.clock()))
	report := groupExpenses(filterExpensesSince(expenses, since))
	report.Period = period
	report.Since = since
	report.Currency = g.currency
	return report, nil
}

func filterExpensesSince(exps []finance.Expense, since time.Time) []finance.Expense {
	res := make([]finance.Expense, 0, len(exps))
	for _, exp := range exps {
		if !exp.Date.Before(since) {
			res = append(res, exp)
		}
	}
	return res
}

func groupExpenses(exps []finance.Expense) *Report {
	m := make(map[string]float64)
	for _, exp := range exps {
		m[exp.Category] = calc.Add(m[exp.Category], exp.Amount)
	}
	records := make([]Record, 0, len(m))
	total := 0.0
	for cat, am := range m {
		records = append(records, Record{Category: cat, Amount: am})
		total = calc.Add(total, am)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Amount == records[j].Amount {
			return records[i].Category < records[j].Category
		}
		return records[i].Amount > records[j].Amount
	})
	return &Report{
		Records: records,
		Total:   total,
	}
}

func ReportPeriods() []string {
	res := make([]string, 0, len(reportPeriods))
	for k := range reportPeriods {
		if k != "" {
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return res
}
