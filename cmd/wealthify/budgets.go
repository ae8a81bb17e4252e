package main

import (
	"context"
	"fmt"

	"wealthify/internal/core"
	"wealthify/internal/stats"
)

func runBudgets(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "show")
	switch act {
	case "show":
		if err := newFlagSet("budgets show").Parse(rest); err != nil {
			return err
		}
		set, err := a.budgets.Current(ctx)
		if err != nil {
			return err
		}
		a.out.Budgets(set)
		return nil

	case "set":
		fs := newFlagSet("budgets set")
		category := fs.String("category", "", "expense category")
		amount := fs.String("amount", "", "monthly budget, 0 allowed")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.prompt.fill(category, "Category"); err != nil {
			return err
		}
		if err := a.prompt.fill(amount, "Amount"); err != nil {
			return err
		}
		m, err := core.ParseMoney(*amount)
		if err != nil {
			return fmt.Errorf("%w: %q", core.ErrInvalidAmount, *amount)
		}
		msg, err := a.budgets.SetBudget(ctx, *category, m)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	case "remove":
		fs := newFlagSet("budgets remove")
		category := fs.String("category", "", "expense category")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.prompt.fill(category, "Category"); err != nil {
			return err
		}
		msg, err := a.budgets.RemoveBudget(ctx, *category)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	default:
		return fmt.Errorf("unknown budgets action %q: use show, set or remove", act)
	}
}

func runAnalysis(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("analysis")
	month := fs.String("month", "", "month YYYY-MM (default this month)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	year, m, err := stats.ParseMonth(*month, a.today())
	if err != nil {
		return err
	}
	analysis, err := a.budgets.Analyze(ctx, year, m)
	if err != nil {
		return err
	}
	a.out.Analysis(analysis)
	return nil
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("dashboard").Parse(args); err != nil {
		return err
	}
	d, err := a.dash.Load(ctx, a.today())
	if err != nil {
		return err
	}
	a.out.Dashboard(d)
	return nil
}
