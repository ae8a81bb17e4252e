package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"wealthify/internal/api"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/stats"
)

var (
	ErrNoBudgets      = errors.New("no budgets configured yet")
	ErrBudgetNotFound = errors.New("no budget set for this category")
)

// Analysis is the budget screen for one month.
type Analysis struct {
	Year   int
	Month  time.Month
	Period stats.DateRange
	// Categories pairs each category spent on this month with its budget.
	Categories []stats.CategoryBudget
	// Budgets is nil until the user saves a first budget.
	Budgets       *core.BudgetSet
	MonthExpenses core.Money
	// Totals from the server's stats snapshot.
	TotalIncomes  core.Money
	TotalExpenses core.Money
}

func (a Analysis) HasBudgets() bool {
	return a.Budgets != nil
}

// SpentPercentage is the share of income already spent.
func (a Analysis) SpentPercentage() float64 {
	return stats.BudgetPercentage(a.TotalIncomes, a.TotalExpenses)
}

type BudgetService struct {
	api    BudgetAPI
	logger *applog.Logger
}

func NewBudgetService(client BudgetAPI, logger *applog.Logger) *BudgetService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &BudgetService{api: client, logger: logger.WithComponent(applog.ComponentBudget)}
}

// Analyze fetches the month's expenses, the budget set and the stats
// snapshot concurrently and reconciles them.
func (s *BudgetService) Analyze(ctx context.Context, year int, month time.Month) (Analysis, error) {
	period := stats.MonthRange(year, month)

	var (
		expenses api.ExpenseList
		budgets  *core.BudgetSet
		snapshot core.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.api.GetExpenses(gctx, api.ListFilter{StartDate: period.Start, EndDate: period.End})
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.api.GetBudgets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot, err = s.api.GetStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	var ceilings map[string]core.Money
	if budgets != nil {
		ceilings = budgets.Budgets
	}
	a := Analysis{
		Year:          year,
		Month:         month,
		Period:        period,
		Categories:    stats.Reconcile(stats.CategoryTotals(expenses.Expenses), ceilings),
		Budgets:       budgets,
		MonthExpenses: stats.Total(expenses.Expenses),
		TotalIncomes:  snapshot.TotalIncomes,
		TotalExpenses: snapshot.TotalExpenses,
	}

	s.logger.DebugContext(ctx, "Budget analysis computed",
		applog.FieldYear, year,
		applog.FieldMonth, int(month),
		"categories", len(a.Categories),
		"has_budgets", a.HasBudgets())
	return a, nil
}

// Current returns the saved budget set, nil when none exists yet.
func (s *BudgetService) Current(ctx context.Context) (*core.BudgetSet, error) {
	return s.api.GetBudgets(ctx)
}

// SetBudget sets the ceiling of one category, keeping the others. The first
// budget creates the user's budget set. A zero amount is a valid budget.
func (s *BudgetService) SetBudget(ctx context.Context, category string, amount core.Money) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", core.ErrEmptyCategory
	}
	if amount.Cents < 0 {
		return "", core.ErrInvalidAmount
	}

	existing, err := s.api.GetBudgets(ctx)
	if err != nil {
		return "", err
	}

	var resp api.MessageResponse
	if existing == nil || existing.ID == "" {
		resp, err = s.api.AddBudgets(ctx, map[string]core.Money{category: amount})
	} else {
		merged := copyBudgets(existing.Budgets)
		merged[category] = amount
		resp, err = s.api.UpdateBudgets(ctx, existing.ID, merged)
	}
	if err != nil {
		return "", fmt.Errorf("save budget: %w", err)
	}

	s.logger.InfoContext(ctx, "Budget saved",
		applog.NewFields().WithOperation(applog.OpUpdate).WithBudget(category, amount.String()).ToSlice()...)
	return resp.Message, nil
}

// RemoveBudget drops a category from the budget set.
func (s *BudgetService) RemoveBudget(ctx context.Context, category string) (string, error) {
	category = strings.TrimSpace(category)
	existing, err := s.api.GetBudgets(ctx)
	if err != nil {
		return "", err
	}
	if existing == nil || existing.ID == "" {
		return "", ErrNoBudgets
	}
	if _, ok := existing.Amount(category); !ok {
		return "", fmt.Errorf("%w: %s", ErrBudgetNotFound, category)
	}

	merged := copyBudgets(existing.Budgets)
	delete(merged, category)
	resp, err := s.api.UpdateBudgets(ctx, existing.ID, merged)
	if err != nil {
		return "", fmt.Errorf("remove budget: %w", err)
	}
	s.logger.InfoContext(ctx, "Budget removed", applog.FieldOperation, applog.OpDelete, applog.FieldCategory, category)
	return resp.Message, nil
}

func copyBudgets(in map[string]core.Money) map[string]core.Money {
	out := make(map[string]core.Money, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
