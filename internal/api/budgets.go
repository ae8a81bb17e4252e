package api

import (
	"context"

	"wealthify/internal/core"
)

// GetBudgets returns the user's budget set, or nil when none was created yet.
func (c *Client) GetBudgets(ctx context.Context) (*core.BudgetSet, error) {
	var env budgetsEnvelope
	if err := c.get(ctx, "get-budgets", nil, &env); err != nil {
		return nil, err
	}
	if env.Response != nil && env.Response.Budgets == nil {
		env.Response.Budgets = map[string]core.Money{}
	}
	return env.Response, nil
}

func (c *Client) AddBudgets(ctx context.Context, budgets map[string]core.Money) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "add-budgets", BudgetsRequest{Budgets: budgets}, &resp)
	return resp, err
}

func (c *Client) UpdateBudgets(ctx context.Context, id string, budgets map[string]core.Money) (MessageResponse, error) {
	var resp MessageResponse
	path, err := idPath("update-budgets", id)
	if err != nil {
		return resp, err
	}
	err = c.put(ctx, path, BudgetsRequest{Budgets: budgets}, &resp)
	return resp, err
}
