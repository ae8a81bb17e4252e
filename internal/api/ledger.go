package api

import (
	"context"

	"wealthify/internal/core"
)

func (c *Client) GetIncomes(ctx context.Context, filter ListFilter) ([]core.Income, error) {
	var incomes []core.Income
	if err := c.get(ctx, "get-incomes", filter.Query(), &incomes); err != nil {
		return nil, err
	}
	if incomes == nil {
		incomes = []core.Income{}
	}
	return incomes, nil
}

func (c *Client) AddIncome(ctx context.Context, income core.Income) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "add-income", income, &resp)
	return resp, err
}

func (c *Client) UpdateIncome(ctx context.Context, id string, income core.Income) (MessageResponse, error) {
	var resp MessageResponse
	path, err := idPath("update-income", id)
	if err != nil {
		return resp, err
	}
	income.ID = ""
	err = c.put(ctx, path, income, &resp)
	return resp, err
}

func (c *Client) DeleteIncome(ctx context.Context, id string) (MessageResponse, error) {
	var resp MessageResponse
	path, err := idPath("delete-income", id)
	if err != nil {
		return resp, err
	}
	err = c.delete(ctx, path, &resp)
	return resp, err
}

func (c *Client) GetExpenses(ctx context.Context, filter ListFilter) (ExpenseList, error) {
	var list ExpenseList
	if err := c.get(ctx, "get-expenses", filter.Query(), &list); err != nil {
		return ExpenseList{}, err
	}
	if list.Expenses == nil {
		list.Expenses = []core.Expense{}
	}
	return list, nil
}

func (c *Client) AddExpense(ctx context.Context, expense core.Expense) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "add-expense", expense, &resp)
	return resp, err
}

func (c *Client) UpdateExpense(ctx context.Context, id string, expense core.Expense) (MessageResponse, error) {
	var resp MessageResponse
	path, err := idPath("update-expense", id)
	if err != nil {
		return resp, err
	}
	expense.ID = ""
	err = c.put(ctx, path, expense, &resp)
	return resp, err
}

func (c *Client) DeleteExpense(ctx context.Context, id string) (MessageResponse, error) {
	var resp MessageResponse
	path, err := idPath("delete-expense", id)
	if err != nil {
		return resp, err
	}
	err = c.delete(ctx, path, &resp)
	return resp, err
}

// GetStats returns the server-computed totals and recent history.
func (c *Client) GetStats(ctx context.Context) (core.Stats, error) {
	var env statsEnvelope
	if err := c.get(ctx, "get-stats", nil, &env); err != nil {
		return core.Stats{}, err
	}
	return env.Response, nil
}
