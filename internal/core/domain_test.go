package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-01-31", "2025-01-31", true},
		{"2025-05-04T00:00:00.000Z", "2025-05-04", true},
		{"2025-05-04T23:59:59+05:30", "2025-05-04", true},
		{"04/05/2025", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidDate, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}
}

func TestDateJSON(t *testing.T) {
	var target struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date": "2024-02-29T10:00:00Z"}`), &target))
	assert.Equal(t, NewDate(2024, 2, 29), target.Date)

	out, err := json.Marshal(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date": "2024-02-29"}`, string(out))
}

func TestDateAddDays(t *testing.T) {
	assert.Equal(t, "2024-03-01", NewDate(2024, 2, 29).AddDays(1).String())
	assert.Equal(t, "2023-12-26", NewDate(2024, 1, 1).AddDays(-6).String())
}

func TestIncomeValidate(t *testing.T) {
	good := Income{Title: "Salary", Category: "Job", Amount: Money{Cents: 100}, Date: NewDate(2025, 1, 1)}
	require.NoError(t, good.Validate())

	bads := []struct {
		income Income
		err    error
	}{
		{Income{Category: "Job", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)}, ErrEmptyTitle},
		{Income{Title: "a", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)}, ErrEmptyCategory},
		{Income{Title: "a", Category: "c", Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Income{Title: "a", Category: "c", Amount: Money{Cents: 1}}, ErrInvalidDate},
	}
	for i, tc := range bads {
		assert.ErrorIs(t, tc.income.Validate(), tc.err, "case %d", i)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Category: "food", Amount: Money{Cents: 100}, Date: NewDate(2025, 1, 1), Type: ExpenseCreditCard}
	require.NoError(t, good.Validate())

	noType := good
	noType.Type = ""
	require.NoError(t, noType.Validate())

	badType := good
	badType.Type = "cash"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidExpenseType)

	noCategory := good
	noCategory.Category = " "
	assert.ErrorIs(t, noCategory.Validate(), ErrEmptyCategory)
}

func TestBudgetSetAmount(t *testing.T) {
	var missing *BudgetSet
	_, ok := missing.Amount("food")
	assert.False(t, ok)

	set := &BudgetSet{Budgets: map[string]Money{"food": {Cents: 20000}, "rent": {}}}
	m, ok := set.Amount("food")
	assert.True(t, ok)
	assert.Equal(t, int64(20000), m.Cents)

	_, ok = set.Amount("rent")
	assert.True(t, ok, "a zero budget is still configured")
}

func TestStatsSplit(t *testing.T) {
	s := Stats{Recent: []Record{
		{Kind: RecordIncome, Title: "Salary"},
		{Kind: RecordExpense, Category: "food"},
		{Category: "fuel"},
	}}
	assert.Len(t, s.Incomes(), 1)
	assert.Len(t, s.Expenses(), 2)
	assert.Equal(t, "fuel", s.Expenses()[1].Label())
}
