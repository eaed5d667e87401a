package currency

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const LKR = "LKR"

// Format renders an amount in major units the way the views show it.
// Unknown codes and amounts too large for minor units fall back to "12.50 XYZ".
func Format(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return fmt.Sprintf("%.2f %s", amount, cur.Code)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// Known reports whether the code is a currency go-money can format.
func Known(code string) bool {
	return money.GetCurrency(code) != nil
}
