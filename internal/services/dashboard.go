package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"wealthify/internal/api"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/stats"
)

// Dashboard is the home screen.
type Dashboard struct {
	Today core.Date
	// Stats is the server snapshot: all-time totals and recent history.
	Stats        core.Stats
	Recent       []stats.Section[core.Record]
	MonthIncome  core.Money
	MonthExpense core.Money
	// Labels, IncomeSeries and ExpenseSeries cover the last seven days,
	// oldest first.
	Labels        []string
	IncomeSeries  []core.Money
	ExpenseSeries []core.Money
}

type DashboardService struct {
	api    DashboardAPI
	logger *applog.Logger
}

func NewDashboardService(client DashboardAPI, logger *applog.Logger) *DashboardService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DashboardService{api: client, logger: logger.WithComponent(applog.ComponentApp)}
}

// Load fetches the snapshot and the records of the current month, reaching
// back far enough to fill the seven-day series when the month just started.
func (s *DashboardService) Load(ctx context.Context, today core.Date) (Dashboard, error) {
	month := stats.MonthRange(today.Year(), today.Month())
	window := stats.DateRange{Start: month.Start, End: month.End}
	if weekStart := today.AddDays(-(stats.WindowDays - 1)); weekStart.Before(window.Start.Time) {
		window.Start = weekStart
	}
	filter := api.ListFilter{StartDate: window.Start, EndDate: window.End}

	var (
		snapshot core.Stats
		incomes  []core.Income
		expenses api.ExpenseList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.api.GetStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.api.GetIncomes(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.api.GetExpenses(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Today:         today,
		Stats:         snapshot,
		Recent:        stats.GroupByDay(snapshot.Recent, today),
		MonthIncome:   stats.Total(within(incomes, month)),
		MonthExpense:  stats.Total(within(expenses.Expenses, month)),
		Labels:        stats.WeekdayLabels(today),
		IncomeSeries:  stats.Last7Days(incomes, today),
		ExpenseSeries: stats.Last7Days(expenses.Expenses, today),
	}, nil
}

func within[T core.Entry](records []T, r stats.DateRange) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		d := rec.EntryDate()
		if !d.Before(r.Start.Time) && !d.After(r.End.Time) {
			out = append(out, rec)
		}
	}
	return out
}
