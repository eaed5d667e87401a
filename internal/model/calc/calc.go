package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

const (
	warningThreshold  = 60
	criticalThreshold = 85
)

var (
	hundred  = decimal.NewFromInt(100)
	maxFloat = decimal.NewFromFloat(math.MaxFloat64)
	minFloat = maxFloat.Neg()
)

// fromFloat reads NaN as 0 and saturates infinities to the largest finite
// float, decimal cannot hold either.
func fromFloat(f float64) decimal.Decimal {
	switch {
	case math.IsNaN(f):
		return decimal.Zero
	case math.IsInf(f, 1):
		return maxFloat
	case math.IsInf(f, -1):
		return minFloat
	}
	return decimal.NewFromFloat(f)
}

// toFloat keeps results finite so they can be fed back in.
func toFloat(d decimal.Decimal) float64 {
	switch {
	case d.GreaterThan(maxFloat):
		return math.MaxFloat64
	case d.LessThan(minFloat):
		return -math.MaxFloat64
	}
	return d.InexactFloat64()
}

// ProgressPercent returns current as a percentage of target. A target that
// is zero or negative yields 0 when nothing is accumulated and 100 otherwise.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		if current <= 0 {
			return 0
		}
		return 100
	}
	return toFloat(fromFloat(current).Div(fromFloat(target)).Mul(hundred))
}

// Remaining may be negative, which means over budget.
func Remaining(total, spent float64) float64 {
	return toFloat(fromFloat(total).Sub(fromFloat(spent)))
}

// BudgetStatus is a display classification, it never blocks spending.
func BudgetStatus(progress float64) Status {
	switch {
	case progress > criticalThreshold:
		return StatusCritical
	case progress > warningThreshold:
		return StatusWarning
	}
	return StatusOK
}

func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(fromFloat(a))
	}
	return toFloat(total)
}

// Add is Sum for two values, handy as a fold step.
func Add(a, b float64) float64 {
	return toFloat(fromFloat(a).Add(fromFloat(b)))
}
