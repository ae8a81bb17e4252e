package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthify/internal/cache"
	"wealthify/internal/core"
	"wealthify/internal/stats"
)

var today = core.NewDate(2025, 3, 12)

func TestListQueryFilter(t *testing.T) {
	tests := []struct {
		name      string
		q         ListQuery
		wantType  int
		wantStart string
		wantEnd   string
	}{
		{"default is this month", ListQuery{}, 2, "2025-03-01", "2025-03-31"},
		{"today", ListQuery{Range: stats.RangeToday}, 1, "2025-03-12", "2025-03-12"},
		{"year", ListQuery{Range: stats.RangeYear}, 3, "2025-01-01", "2025-12-31"},
		{"explicit dates win", ListQuery{Range: stats.RangeYear, From: core.NewDate(2025, 2, 1), To: core.NewDate(2025, 2, 10)}, 0, "2025-02-01", "2025-02-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.q.Filter(today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, f.Type)
			assert.Equal(t, tt.wantStart, f.StartDate.String())
			assert.Equal(t, tt.wantEnd, f.EndDate.String())
		})
	}

	_, err := ListQuery{From: core.NewDate(2025, 3, 2), To: core.NewDate(2025, 3, 1)}.Filter(today)
	assert.Error(t, err)
}

func TestListExpensesTotals(t *testing.T) {
	fake := newFakeAPI()
	fake.expenses = []core.Expense{
		{Category: "food", Amount: amt(100), Date: today},
		{Category: "fuel", Amount: amt(30), Date: today},
	}
	svc := NewLedgerService(fake, nil, nil)

	page, err := svc.ListExpenses(context.Background(), ListQuery{Keyword: " rice "}, today)
	require.NoError(t, err)
	assert.Equal(t, "130", page.Total.String())
	assert.Equal(t, "rice", fake.lastFilter.Keyword)
}

func TestAddIncomeValidatesBeforeSubmitting(t *testing.T) {
	fake := newFakeAPI()
	svc := NewLedgerService(fake, nil, nil)
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, core.Income{Category: "Job", Amount: amt(1), Date: today})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)
	_, err = svc.AddIncome(ctx, core.Income{Title: "Salary", Category: "Job", Date: today})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Zero(t, fake.count("AddIncome"))

	msg, err := svc.AddIncome(ctx, core.Income{Title: "Salary", Category: "Job", Amount: amt(100), Date: today})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)

	_, err = svc.UpdateIncome(ctx, "i1", core.Income{Title: "Salary", Category: "Job", Amount: amt(200), Date: today})
	require.NoError(t, err)
	assert.Equal(t, "i1", fake.lastID)

	_, err = svc.DeleteIncome(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("DeleteIncome"))
}

func TestAddExpenseDefaultsType(t *testing.T) {
	fake := newFakeAPI()
	svc := NewLedgerService(fake, nil, nil)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, core.Expense{Category: "food", Amount: amt(10), Date: today})
	require.NoError(t, err)
	assert.Equal(t, core.ExpenseSelf, fake.lastExpense.Type)

	_, err = svc.UpdateExpense(ctx, "e1", core.Expense{Category: "food", Amount: amt(10), Date: today, Type: "cash"})
	assert.ErrorIs(t, err, core.ErrInvalidExpenseType)

	_, err = svc.UpdateExpense(ctx, "e1", core.Expense{Category: "food", Amount: amt(10), Date: today, Type: core.ExpenseCreditCard})
	require.NoError(t, err)
	assert.Equal(t, core.ExpenseCreditCard, fake.lastExpense.Type)

	_, err = svc.DeleteExpense(ctx, "e1")
	require.NoError(t, err)
}

func TestCategoriesAreCached(t *testing.T) {
	fake := newFakeAPI()
	fake.cats[core.ExpenseCategory] = []core.Category{{Title: "Food"}, {Title: "Fuel"}}
	svc := NewLedgerService(fake, cache.NewLRUCache[[]string](8, time.Hour), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cats, err := svc.Categories(ctx, core.ExpenseCategory)
		require.NoError(t, err)
		assert.Equal(t, []string{"Food", "Fuel"}, cats)
	}
	assert.Equal(t, 1, fake.count("GetCategories"))

	_, err := svc.AddCategory(ctx, core.ExpenseCategory, "Rent")
	require.NoError(t, err)
	cats, err := svc.Categories(ctx, core.ExpenseCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Fuel", "Rent"}, cats)
	assert.Equal(t, 2, fake.count("GetCategories"))

	_, err = svc.Categories(ctx, "other")
	assert.ErrorIs(t, err, core.ErrInvalidCategoryKind)
}

func TestCategoriesResultDoesNotAliasCache(t *testing.T) {
	fake := newFakeAPI()
	fake.cats[core.IncomeCategory] = []core.Category{{Title: "Salary"}}
	fake.subs["Food"] = []core.SubCategory{{Title: "Snacks"}}
	svc := NewLedgerService(fake, cache.NewLRUCache[[]string](8, time.Hour), nil)
	ctx := context.Background()

	cats, err := svc.Categories(ctx, core.IncomeCategory)
	require.NoError(t, err)
	cats[0] = "Bonus"
	cats, err = svc.Categories(ctx, core.IncomeCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salary"}, cats)

	subs, err := svc.SubCategories(ctx, "Food")
	require.NoError(t, err)
	subs[0] = "Dinner"
	subs, err = svc.SubCategories(ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, []string{"Snacks"}, subs)
	assert.Equal(t, 1, fake.count("GetCategories"))
}

func TestSubCategories(t *testing.T) {
	fake := newFakeAPI()
	fake.subs["Food"] = []core.SubCategory{{Title: "Snacks"}}
	svc := NewLedgerService(fake, cache.NewLRUCache[[]string](8, time.Hour), nil)
	ctx := context.Background()

	subs, err := svc.SubCategories(ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, []string{"Snacks"}, subs)

	_, err = svc.AddSubCategory(ctx, "Food", "")
	assert.ErrorIs(t, err, core.ErrEmptyTitle)
	_, err = svc.AddSubCategory(ctx, "", "Dinner")
	assert.ErrorIs(t, err, core.ErrEmptyCategory)

	_, err = svc.AddSubCategory(ctx, "Food", "Dinner")
	require.NoError(t, err)
	subs, err = svc.SubCategories(ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, []string{"Snacks", "Dinner"}, subs)
}
