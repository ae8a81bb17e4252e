package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthify/internal/core"
)

func units(f float64) core.Money { return core.MoneyFromFloat(f) }

func TestBudgetPercentage(t *testing.T) {
	cases := []struct {
		name         string
		total, spend float64
		want         float64
	}{
		{"zero total", 0, 500, 0},
		{"zero total zero spend", 0, 0, 0},
		{"nothing spent", 500, 0, 0},
		{"rounded integer", 1000, 900, 90},
		{"rounds half up", 1000, 125, 13},
		{"exactly 99", 100, 99, 99},
		{"near full keeps decimals", 1000, 999.5, 99.95},
		{"full", 200, 200, 100},
		{"overspent keeps decimals", 300, 400, 133.33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BudgetPercentage(units(tc.total), units(tc.spend)))
		})
	}
}

func TestBudgetPercentageZeroTotalAlwaysZero(t *testing.T) {
	for _, spend := range []float64{0, 0.01, 1, 1e6} {
		assert.Zero(t, BudgetPercentage(core.Money{}, units(spend)))
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelSuccess, LevelFor(0))
	assert.Equal(t, LevelSuccess, LevelFor(69))
	assert.Equal(t, LevelWarning, LevelFor(70))
	assert.Equal(t, LevelWarning, LevelFor(89))
	assert.Equal(t, LevelDanger, LevelFor(90))
	assert.Equal(t, LevelDanger, LevelFor(133.33))
}

func TestCategoryTotals(t *testing.T) {
	expenses := []core.Expense{
		{Category: "food", Amount: units(100)},
		{Category: "food", Amount: units(50)},
		{Category: "fuel", Amount: units(30)},
	}

	got := CategoryTotals(expenses)

	assert.Equal(t, []CategoryTotal{
		{Category: "food", TotalExpenses: units(150)},
		{Category: "fuel", TotalExpenses: units(30)},
	}, got)
}

func TestCategoryTotalsFirstSeenOrder(t *testing.T) {
	expenses := []core.Expense{
		{Category: "rent", Amount: units(1)},
		{Category: "food", Amount: units(2)},
		{Category: "rent", Amount: units(3)},
		{Category: "bills", Amount: units(0.1)},
		{Category: "bills", Amount: units(0.2)},
	}

	got := CategoryTotals(expenses)

	require.Len(t, got, 3)
	assert.Equal(t, "rent", got[0].Category)
	assert.Equal(t, "food", got[1].Category)
	assert.Equal(t, "bills", got[2].Category)
	assert.Equal(t, int64(30), got[2].TotalExpenses.Cents, "sums are exact")
}

func TestCategoryTotalsEmpty(t *testing.T) {
	assert.Empty(t, CategoryTotals(nil))
}

func TestReconcile(t *testing.T) {
	totals := []CategoryTotal{{Category: "food", TotalExpenses: units(150)}}

	withBudget := Reconcile(totals, map[string]core.Money{"food": units(200)})
	require.Len(t, withBudget, 1)
	assert.Equal(t, "food", withBudget[0].Category)
	assert.Equal(t, units(150), withBudget[0].TotalExpenses)
	assert.Equal(t, "200", withBudget[0].Amount())
	assert.True(t, withBudget[0].HaveBudget)
	assert.Equal(t, float64(75), withBudget[0].Percentage())

	without := Reconcile(totals, map[string]core.Money{})
	require.Len(t, without, 1)
	assert.Equal(t, "", without[0].Amount())
	assert.False(t, without[0].HaveBudget)
	assert.Zero(t, without[0].Percentage())
}

func TestReconcileZeroBudgetIsConfigured(t *testing.T) {
	got := Reconcile([]CategoryTotal{{Category: "fun", TotalExpenses: units(10)}}, map[string]core.Money{"fun": {}})

	require.Len(t, got, 1)
	assert.True(t, got[0].HaveBudget)
	assert.Equal(t, "0", got[0].Amount())
	assert.Zero(t, got[0].Percentage())
}

func TestReconcileNilBudgets(t *testing.T) {
	got := Reconcile([]CategoryTotal{{Category: "food"}, {Category: "fuel"}}, nil)

	require.Len(t, got, 2)
	for _, cb := range got {
		assert.False(t, cb.HaveBudget)
	}
}

func TestCategoryBudgetJSON(t *testing.T) {
	out, err := json.Marshal(CategoryBudget{Category: "food", TotalExpenses: units(150), Budget: units(200), HaveBudget: true})

	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"food","totalExpenses":150,"amount":"200","haveBudget":true}`, string(out))
}
