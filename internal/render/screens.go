package render

import (
	"fmt"
	"sort"
	"time"

	"wealthify/internal/core"
	"wealthify/internal/services"
	"wealthify/internal/session"
	"wealthify/internal/stats"
)

// ChartWidth is the number of cells of the longest dashboard bar.
const ChartWidth = 30

func (p *Printer) Incomes(page services.IncomePage, today core.Date) {
	p.println(p.title.Render("Incomes") + "  " + p.income.Render(Amount(page.Total)))
	if len(page.Incomes) == 0 {
		p.println(p.muted.Render("No incomes in this period."))
		return
	}
	for _, sec := range stats.GroupByDay(page.Incomes, today) {
		p.println(p.heading.Render(sec.Title))
		for _, in := range sec.Items {
			p.println(fmt.Sprintf("  %-24s %-16s %14s  %s",
				truncate(in.Title, 24),
				truncate(in.Category, 16),
				Amount(in.Amount),
				p.muted.Render(in.ID)))
		}
	}
}

func (p *Printer) Expenses(page services.ExpensePage, today core.Date) {
	p.println(p.title.Render("Expenses") + "  " + p.expense.Render(Amount(page.Total)))
	if len(page.Expenses) == 0 {
		p.println(p.muted.Render("No expenses in this period."))
		return
	}
	for _, sec := range stats.GroupByDay(page.Expenses, today) {
		p.println(p.heading.Render(sec.Title))
		for _, e := range sec.Items {
			category := e.Category
			if e.SubCategory != "" {
				category += " / " + e.SubCategory
			}
			p.println(fmt.Sprintf("  %-28s %-12s %14s  %s",
				truncate(category, 28),
				truncate(string(e.Type), 12),
				Amount(e.Amount),
				p.muted.Render(e.ID)))
		}
	}
}

// Analysis prints the budget screen.
func (p *Printer) Analysis(a services.Analysis) {
	month := time.Date(a.Year, a.Month, 1, 0, 0, 0, 0, time.UTC)
	p.println(p.title.Render("Budget analysis · " + month.Format("January 2006")))
	p.println(fmt.Sprintf("Spent %s of %s income  %s",
		Amount(a.TotalExpenses), Amount(a.TotalIncomes), p.Progress(a.SpentPercentage())))
	p.println(fmt.Sprintf("This month: %s", p.expense.Render(Amount(a.MonthExpenses))))

	if !a.HasBudgets() {
		p.println(p.muted.Render("No budgets configured yet. Use `budgets set` to add one."))
	}
	if len(a.Categories) == 0 {
		p.println(p.muted.Render("No expenses this month."))
		return
	}

	rows := make([][]string, 0, len(a.Categories))
	for _, c := range a.Categories {
		budget, used := "-", p.muted.Render("no budget")
		if c.HaveBudget {
			budget = Amount(c.Budget)
			used = p.Progress(c.Percentage())
		}
		rows = append(rows, []string{c.Category, Amount(c.TotalExpenses), budget, used})
	}
	p.println(p.table([]string{"Category", "Spent", "Budget", "Used"}, rows))
}

// Budgets prints the configured ceilings.
func (p *Printer) Budgets(set *core.BudgetSet) {
	p.println(p.title.Render("Budgets"))
	if set == nil || len(set.Budgets) == 0 {
		p.println(p.muted.Render("No budgets configured yet."))
		return
	}
	rows := make([][]string, 0, len(set.Budgets))
	for _, category := range sortedKeys(set.Budgets) {
		rows = append(rows, []string{category, Amount(set.Budgets[category])})
	}
	p.println(p.table([]string{"Category", "Monthly budget"}, rows))
}

func (p *Printer) Dashboard(d services.Dashboard) {
	p.println(p.title.Render("Dashboard · " + d.Today.Format("Mon 02 Jan 2006")))
	balance := d.Stats.TotalIncomes.Sub(d.Stats.TotalExpenses)
	p.println(p.table(
		[]string{"", "Income", "Expense", "Balance"},
		[][]string{
			{"All time", Amount(d.Stats.TotalIncomes), Amount(d.Stats.TotalExpenses), Amount(balance)},
			{"This month", Amount(d.MonthIncome), Amount(d.MonthExpense), Amount(d.MonthIncome.Sub(d.MonthExpense))},
		}))

	p.println(p.heading.Render("Last 7 days"))
	p.chart(d.Labels, d.IncomeSeries, d.ExpenseSeries)

	p.println(p.heading.Render("Recent"))
	if len(d.Recent) == 0 {
		p.println(p.muted.Render("No recent activity."))
		return
	}
	for _, sec := range d.Recent {
		p.println(p.accent.Render(sec.Title))
		for _, r := range sec.Items {
			amount := p.expense.Render("-" + Amount(r.Amount))
			if r.Kind == core.RecordIncome {
				amount = p.income.Render("+" + Amount(r.Amount))
			}
			p.println(fmt.Sprintf("  %-28s %s", truncate(r.Label(), 28), amount))
		}
	}
}

func (p *Printer) chart(labels []string, incomes, expenses []core.Money) {
	step, sections := stats.ChartScale(incomes, expenses)
	top := step.Cents * int64(sections)
	for i, label := range labels {
		if i >= len(incomes) || i >= len(expenses) {
			break
		}
		p.println(fmt.Sprintf("  %-3s %s %s", label,
			p.income.Render(chartBar(incomes[i], top)), Amount(incomes[i])))
		p.println(fmt.Sprintf("  %-3s %s %s", "",
			p.expense.Render(chartBar(expenses[i], top)), Amount(expenses[i])))
	}
	p.println(p.muted.Render(fmt.Sprintf("  scale: %s per %d cells, %d sections",
		Amount(step), ChartWidth/sections, sections)))
}

func chartBar(v core.Money, top int64) string {
	if top <= 0 {
		return ""
	}
	return Bar(float64(v.Cents)/float64(top)*100, ChartWidth)
}

// Status prints the local session state.
func (p *Printer) Status(st services.Status, now time.Time) {
	if st.State != session.Authenticated {
		p.println(p.muted.Render("Not logged in."))
		return
	}
	p.println(fmt.Sprintf("Logged in as %s <%s>", p.accent.Render(st.User.Username), st.User.Email))
	if !st.HasExpiry {
		return
	}
	if st.ExpiresAt.Before(now) {
		p.println(p.errStyle.Render("Session expired " + st.ExpiresAt.Local().Format(time.DateTime)))
		return
	}
	p.println(p.muted.Render(fmt.Sprintf("Session valid until %s (%s left)",
		st.ExpiresAt.Local().Format(time.DateTime), st.ExpiresAt.Sub(now).Round(time.Minute))))
}

func (p *Printer) Profile(u core.User) {
	p.println(p.title.Render("Profile"))
	p.println(p.table(nil, [][]string{
		{"Username", u.Username},
		{"Email", u.Email},
	}))
}

func sortedKeys(m map[string]core.Money) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
