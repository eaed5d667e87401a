package finance

import (
	"strings"
	"time"

	"max.ks1230/finance-tracker/internal/utils"
)

type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

var Periods = []Period{Daily, Weekly, Monthly, Yearly}

func (p Period) Valid() bool {
	return utils.Contains(Periods, p)
}

// ParsePeriod maps user input to a period; empty input means monthly.
func ParsePeriod(s string) (Period, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Monthly, true
	}
	p := Period(s)
	return p, p.Valid()
}

// DefaultCategories are offered by the views, categories stay free-form.
var DefaultCategories = []string{
	"Groceries",
	"Dining Out",
	"Transportation",
	"Utilities",
	"Housing",
	"Entertainment",
	"Shopping",
	"Health",
	"Education",
	"Personal Care",
	"Other",
}

type Expense struct {
	ID          int64     `json:"id,omitempty"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ExpensePatch carries the fields an edit form changed.
type ExpensePatch struct {
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *Date    `json:"date,omitempty"`
}

type Budget struct {
	ID            int64     `json:"id,omitempty"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Period        Period    `json:"period"`
	Notifications bool      `json:"notifications"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

type Goal struct {
	ID            int64     `json:"id,omitempty"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    Date      `json:"targetDate"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

func (g Goal) IsEmergencyFund() bool {
	return strings.Contains(strings.ToLower(g.Name), "emergency")
}
