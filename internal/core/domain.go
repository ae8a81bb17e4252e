package core

import (
	"errors"
	"strings"
)

const (
	ExpenseSelf       ExpenseType = "self"
	ExpenseCreditCard ExpenseType = "credit card"

	IncomeCategory  CategoryKind = "income"
	ExpenseCategory CategoryKind = "expense"
)

type (
	ExpenseType  string
	CategoryKind string

	Income struct {
		ID          string `json:"_id,omitempty"`
		Title       string `json:"title"`
		Category    string `json:"category"`
		Amount      Money  `json:"amount"`
		Date        Date   `json:"date"`
		Description string `json:"description,omitempty"`
	}

	Expense struct {
		ID          string      `json:"_id,omitempty"`
		Category    string      `json:"category"`
		SubCategory string      `json:"sub_category,omitempty"`
		Amount      Money       `json:"amount"`
		Date        Date        `json:"date"`
		Description string      `json:"description,omitempty"`
		Type        ExpenseType `json:"type,omitempty"`
	}

	// BudgetSet is the per-user mapping of category to monthly ceiling.
	BudgetSet struct {
		ID      string           `json:"_id,omitempty"`
		Budgets map[string]Money `json:"budgets"`
	}

	User struct {
		ID       string `json:"_id,omitempty"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	Category struct {
		ID    string       `json:"_id,omitempty"`
		Title string       `json:"title"`
		Type  CategoryKind `json:"type,omitempty"`
	}

	SubCategory struct {
		ID       string `json:"_id,omitempty"`
		Title    string `json:"title"`
		Category string `json:"category,omitempty"`
	}
)

// Entry is anything with a calendar day and an amount.
type Entry interface {
	EntryDate() Date
	EntryAmount() Money
}

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyTitle          = errors.New("please enter title")
	ErrEmptyCategory       = errors.New("please select category")
	ErrInvalidExpenseType  = errors.New("invalid expense type")
	ErrInvalidCategoryKind = errors.New("invalid category type")
)

func (i Income) EntryDate() Date    { return i.Date }
func (i Income) EntryAmount() Money { return i.Amount }

func (e Expense) EntryDate() Date    { return e.Date }
func (e Expense) EntryAmount() Money { return e.Amount }

func (t ExpenseType) Validate() error {
	switch t {
	case "", ExpenseSelf, ExpenseCreditCard:
		return nil
	default:
		return ErrInvalidExpenseType
	}
}

func (k CategoryKind) Validate() error {
	switch k {
	case IncomeCategory, ExpenseCategory:
		return nil
	default:
		return ErrInvalidCategoryKind
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(i.Category) == "" {
		return ErrEmptyCategory
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	return i.Date.Validate()
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.Type.Validate()
}

// Amount returns the configured ceiling for category and whether one is set.
// A category mapped to zero is still a configured budget.
func (b *BudgetSet) Amount(category string) (Money, bool) {
	if b == nil || b.Budgets == nil {
		return Money{}, false
	}
	m, ok := b.Budgets[category]
	return m, ok
}
