package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"wealthify/internal/api"
	"wealthify/internal/cache"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/stats"
)

// ListQuery selects a page of the incomes or expenses screen. An explicit
// From/To pair wins over the Range preset.
type ListQuery struct {
	Range   stats.RangeType
	From    core.Date
	To      core.Date
	Keyword string
}

// Filter resolves q against today.
func (q ListQuery) Filter(today core.Date) (api.ListFilter, error) {
	f := api.ListFilter{Keyword: strings.TrimSpace(q.Keyword)}
	if !q.From.IsZero() || !q.To.IsZero() {
		if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From.Time) {
			return api.ListFilter{}, fmt.Errorf("end date %s is before start date %s", q.To, q.From)
		}
		f.StartDate, f.EndDate = q.From, q.To
		return f, nil
	}
	r := q.Range
	if r == 0 {
		r = stats.RangeMonth
	}
	dr, err := stats.RangeFor(r, today)
	if err != nil {
		return api.ListFilter{}, err
	}
	f.Type = int(r)
	f.StartDate, f.EndDate = dr.Start, dr.End
	return f, nil
}

type IncomePage struct {
	Incomes []core.Income
	Total   core.Money
}

type ExpensePage struct {
	Expenses []core.Expense
	Total    core.Money
}

// LedgerService covers the incomes, expenses and category screens.
type LedgerService struct {
	api      LedgerAPI
	taxonomy *cache.ReadThrough[[]string]
	logger   *applog.Logger
}

// NewLedgerService caches category lookups in c; a nil c disables caching.
func NewLedgerService(client LedgerAPI, c cache.Cache[[]string], logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.Discard()
	}
	if c == nil {
		c = cache.NewLRUCache[[]string](1, 0)
	}
	return &LedgerService{
		api:      client,
		taxonomy: cache.NewReadThrough(c),
		logger:   logger.WithComponent(applog.ComponentLedger),
	}
}

func (s *LedgerService) ListIncomes(ctx context.Context, q ListQuery, today core.Date) (IncomePage, error) {
	f, err := q.Filter(today)
	if err != nil {
		return IncomePage{}, err
	}
	incomes, err := s.api.GetIncomes(ctx, f)
	if err != nil {
		return IncomePage{}, err
	}
	return IncomePage{Incomes: incomes, Total: stats.Total(incomes)}, nil
}

func (s *LedgerService) ListExpenses(ctx context.Context, q ListQuery, today core.Date) (ExpensePage, error) {
	f, err := q.Filter(today)
	if err != nil {
		return ExpensePage{}, err
	}
	list, err := s.api.GetExpenses(ctx, f)
	if err != nil {
		return ExpensePage{}, err
	}
	total := list.TotalExpenses
	if total.IsZero() {
		total = stats.Total(list.Expenses)
	}
	return ExpensePage{Expenses: list.Expenses, Total: total}, nil
}

func (s *LedgerService) AddIncome(ctx context.Context, income core.Income) (string, error) {
	if err := income.Validate(); err != nil {
		return "", err
	}
	resp, err := s.api.AddIncome(ctx, income)
	if err != nil {
		return "", err
	}
	s.logMutation(ctx, applog.OpCreate, "income", income.Category, income.Amount)
	return resp.Message, nil
}

func (s *LedgerService) UpdateIncome(ctx context.Context, id string, income core.Income) (string, error) {
	if err := income.Validate(); err != nil {
		return "", err
	}
	resp, err := s.api.UpdateIncome(ctx, id, income)
	if err != nil {
		return "", err
	}
	s.logMutation(ctx, applog.OpUpdate, "income", income.Category, income.Amount)
	return resp.Message, nil
}

func (s *LedgerService) DeleteIncome(ctx context.Context, id string) (string, error) {
	resp, err := s.api.DeleteIncome(ctx, id)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "Income deleted", applog.FieldOperation, applog.OpDelete, "id", id)
	return resp.Message, nil
}

// AddExpense validates and submits an expense; an empty type means self.
func (s *LedgerService) AddExpense(ctx context.Context, expense core.Expense) (string, error) {
	if expense.Type == "" {
		expense.Type = core.ExpenseSelf
	}
	if err := expense.Validate(); err != nil {
		return "", err
	}
	resp, err := s.api.AddExpense(ctx, expense)
	if err != nil {
		return "", err
	}
	s.logMutation(ctx, applog.OpCreate, "expense", expense.Category, expense.Amount)
	return resp.Message, nil
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id string, expense core.Expense) (string, error) {
	if expense.Type == "" {
		expense.Type = core.ExpenseSelf
	}
	if err := expense.Validate(); err != nil {
		return "", err
	}
	resp, err := s.api.UpdateExpense(ctx, id, expense)
	if err != nil {
		return "", err
	}
	s.logMutation(ctx, applog.OpUpdate, "expense", expense.Category, expense.Amount)
	return resp.Message, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id string) (string, error) {
	resp, err := s.api.DeleteExpense(ctx, id)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "Expense deleted", applog.FieldOperation, applog.OpDelete, "id", id)
	return resp.Message, nil
}

func (s *LedgerService) logMutation(ctx context.Context, op, kind, category string, amount core.Money) {
	s.logger.InfoContext(ctx, "Record saved",
		applog.FieldOperation, op,
		"kind", kind,
		applog.FieldCategory, category,
		applog.FieldAmount, amount.String())
}

func categoriesKey(kind core.CategoryKind) string {
	return "categories:" + string(kind)
}

func subCategoriesKey(category string) string {
	return "subcategories:" + category
}

// Categories returns the category titles of kind. The slice is the caller's
// own copy.
func (s *LedgerService) Categories(ctx context.Context, kind core.CategoryKind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	titles, err := s.taxonomy.Get(ctx, categoriesKey(kind), func(ctx context.Context) ([]string, error) {
		cats, err := s.api.GetCategories(ctx, kind)
		if err != nil {
			return nil, err
		}
		titles := make([]string, 0, len(cats))
		for _, c := range cats {
			titles = append(titles, c.Title)
		}
		return titles, nil
	})
	return slices.Clone(titles), err
}

// SubCategories returns the sub-category titles of an expense category.
func (s *LedgerService) SubCategories(ctx context.Context, category string) ([]string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, core.ErrEmptyCategory
	}
	titles, err := s.taxonomy.Get(ctx, subCategoriesKey(category), func(ctx context.Context) ([]string, error) {
		subs, err := s.api.GetSubCategories(ctx, category)
		if err != nil {
			return nil, err
		}
		titles := make([]string, 0, len(subs))
		for _, sc := range subs {
			titles = append(titles, sc.Title)
		}
		return titles, nil
	})
	return slices.Clone(titles), err
}

func (s *LedgerService) AddCategory(ctx context.Context, kind core.CategoryKind, title string) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", core.ErrEmptyTitle
	}
	resp, err := s.api.AddCategory(ctx, api.AddCategoryRequest{Title: title, Type: kind})
	if err != nil {
		return "", err
	}
	s.taxonomy.Invalidate(categoriesKey(kind))
	return resp.Message, nil
}

func (s *LedgerService) AddSubCategory(ctx context.Context, category, title string) (string, error) {
	category, title = strings.TrimSpace(category), strings.TrimSpace(title)
	if category == "" {
		return "", core.ErrEmptyCategory
	}
	if title == "" {
		return "", core.ErrEmptyTitle
	}
	resp, err := s.api.AddSubCategory(ctx, api.AddSubCategoryRequest{Title: title, Category: category})
	if err != nil {
		return "", err
	}
	s.taxonomy.Invalidate(subCategoriesKey(category))
	return resp.Message, nil
}
