// Package stats derives the figures shown on the dashboard and the budget
// analysis from records fetched from the API. Every function is pure.
package stats

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"wealthify/internal/core"
)

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Level is the colour band of a percentage bar.
type Level string

var hundred = decimal.NewFromInt(100)

// BudgetPercentage returns spend as a percentage of total.
//
// A zero total yields 0. Above 99 the value keeps two decimals so that
// near-100% and overspent budgets stay distinguishable; otherwise it is
// rounded to the nearest integer.
func BudgetPercentage(total, spend core.Money) float64 {
	if total.IsZero() {
		return 0
	}
	pct := spend.Decimal().Div(total.Decimal()).Mul(hundred)
	if pct.GreaterThan(decimal.NewFromInt(99)) {
		return pct.Round(2).InexactFloat64()
	}
	return pct.Round(0).InexactFloat64()
}

// LevelFor maps a percentage to its colour band.
func LevelFor(pct float64) Level {
	switch {
	case pct >= 90:
		return LevelDanger
	case pct >= 70:
		return LevelWarning
	default:
		return LevelSuccess
	}
}

// CategoryTotal is the sum of expenses for one category.
type CategoryTotal struct {
	Category      string     `json:"category"`
	TotalExpenses core.Money `json:"totalExpenses"`
}

// CategoryTotals sums expense amounts per category, in first-seen order.
func CategoryTotals(expenses []core.Expense) []CategoryTotal {
	out := make([]CategoryTotal, 0)
	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].TotalExpenses = out[i].TotalExpenses.Add(e.Amount)
	}
	return out
}

// CategoryBudget joins a category's expense total with its configured budget.
type CategoryBudget struct {
	Category      string
	TotalExpenses core.Money
	Budget        core.Money
	HaveBudget    bool
}

// Amount is the configured budget as text, empty when none is set.
func (c CategoryBudget) Amount() string {
	if !c.HaveBudget {
		return ""
	}
	return c.Budget.String()
}

// Percentage of the budget already spent; 0 without a budget.
func (c CategoryBudget) Percentage() float64 {
	if !c.HaveBudget {
		return 0
	}
	return BudgetPercentage(c.Budget, c.TotalExpenses)
}

func (c CategoryBudget) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category      string     `json:"category"`
		TotalExpenses core.Money `json:"totalExpenses"`
		Amount        string     `json:"amount"`
		HaveBudget    bool       `json:"haveBudget"`
	}{c.Category, c.TotalExpenses, c.Amount(), c.HaveBudget})
}

// Reconcile pairs every category total with its budget. A category missing
// from budgets has no budget; a category mapped to zero has a zero budget.
func Reconcile(totals []CategoryTotal, budgets map[string]core.Money) []CategoryBudget {
	out := make([]CategoryBudget, 0, len(totals))
	for _, t := range totals {
		cb := CategoryBudget{Category: t.Category, TotalExpenses: t.TotalExpenses}
		if amount, ok := budgets[t.Category]; ok {
			cb.Budget = amount
			cb.HaveBudget = true
		}
		out = append(out, cb)
	}
	return out
}
