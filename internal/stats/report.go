package stats

import (
	"fmt"
	"time"

	"wealthify/internal/core"
)

// MonthReport is the downloadable summary of one calendar month.
type MonthReport struct {
	Year         int
	Month        time.Month
	Period       DateRange
	Incomes      []core.Income
	Expenses     []core.Expense
	TotalIncome  core.Money
	TotalExpense core.Money
	Categories   []CategoryBudget
	GeneratedAt  time.Time
}

// NewMonthReport totals incomes and expenses and reconciles the expenses with
// budgets. budgets may be nil.
func NewMonthReport(year int, month time.Month, incomes []core.Income, expenses []core.Expense, budgets *core.BudgetSet) MonthReport {
	var ceilings map[string]core.Money
	if budgets != nil {
		ceilings = budgets.Budgets
	}
	return MonthReport{
		Year:         year,
		Month:        month,
		Period:       MonthRange(year, month),
		Incomes:      incomes,
		Expenses:     expenses,
		TotalIncome:  Total(incomes),
		TotalExpense: Total(expenses),
		Categories:   Reconcile(CategoryTotals(expenses), ceilings),
	}
}

// Key is the YYYY-MM form of the period.
func (r MonthReport) Key() string {
	return fmt.Sprintf("%04d-%02d", r.Year, int(r.Month))
}

func (r MonthReport) Title() string {
	return r.Key() + " Report"
}

func (r MonthReport) Balance() core.Money {
	return r.TotalIncome.Sub(r.TotalExpense)
}

// Rows lays the report out as a table: a summary block, then incomes,
// expenses and budget usage, separated by empty rows.
func (r MonthReport) Rows() [][]string {
	rows := [][]string{
		{"Report", r.Key()},
		{"Period", r.Period.Start.String(), r.Period.End.String()},
		{"Total income", r.TotalIncome.String()},
		{"Total expense", r.TotalExpense.String()},
		{"Balance", r.Balance().String()},
		{},
		{"Incomes"},
		{"Date", "Title", "Category", "Amount", "Description"},
	}
	for _, i := range r.Incomes {
		rows = append(rows, []string{i.Date.String(), i.Title, i.Category, i.Amount.String(), i.Description})
	}

	rows = append(rows,
		[]string{},
		[]string{"Expenses"},
		[]string{"Date", "Category", "Sub category", "Type", "Amount", "Description"},
	)
	for _, e := range r.Expenses {
		rows = append(rows, []string{e.Date.String(), e.Category, e.SubCategory, string(e.Type), e.Amount.String(), e.Description})
	}

	rows = append(rows,
		[]string{},
		[]string{"Budgets"},
		[]string{"Category", "Spent", "Budget", "Used"},
	)
	for _, c := range r.Categories {
		used := ""
		if c.HaveBudget {
			used = FormatPercentage(c.Percentage())
		}
		rows = append(rows, []string{c.Category, c.TotalExpenses.String(), c.Amount(), used})
	}
	return rows
}
