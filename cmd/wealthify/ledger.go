package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wealthify/internal/core"
	"wealthify/internal/services"
	"wealthify/internal/stats"
)

type listFlags struct {
	rangeName string
	from      string
	to        string
	keyword   string
}

func (l *listFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&l.rangeName, "range", "month", "today, month or year")
	fs.StringVar(&l.from, "from", "", "start date YYYY-MM-DD (overrides -range)")
	fs.StringVar(&l.to, "to", "", "end date YYYY-MM-DD (overrides -range)")
	fs.StringVar(&l.keyword, "q", "", "search keyword")
}

func (l *listFlags) query() (services.ListQuery, error) {
	r, err := stats.ParseRangeType(l.rangeName)
	if err != nil {
		return services.ListQuery{}, err
	}
	q := services.ListQuery{Range: r, Keyword: l.keyword}
	if l.from != "" {
		if q.From, err = core.ParseDate(l.from); err != nil {
			return services.ListQuery{}, err
		}
	}
	if l.to != "" {
		if q.To, err = core.ParseDate(l.to); err != nil {
			return services.ListQuery{}, err
		}
	}
	return q, nil
}

type recordFlags struct {
	title       string
	category    string
	subCategory string
	amount      string
	date        string
	description string
	kind        string
}

func (r *recordFlags) registerIncome(fs *flag.FlagSet) {
	fs.StringVar(&r.title, "title", "", "income title")
	fs.StringVar(&r.category, "category", "", "income category")
	fs.StringVar(&r.amount, "amount", "", "amount, e.g. 1500 or 99.50")
	fs.StringVar(&r.date, "date", "", "date YYYY-MM-DD (default today)")
	fs.StringVar(&r.description, "description", "", "optional note")
}

func (r *recordFlags) registerExpense(fs *flag.FlagSet) {
	fs.StringVar(&r.category, "category", "", "expense category")
	fs.StringVar(&r.subCategory, "sub", "", "optional sub-category")
	fs.StringVar(&r.amount, "amount", "", "amount, e.g. 1500 or 99.50")
	fs.StringVar(&r.date, "date", "", "date YYYY-MM-DD (default today)")
	fs.StringVar(&r.description, "description", "", "optional note")
	fs.StringVar(&r.kind, "type", string(core.ExpenseSelf), "self or \"credit card\"")
}

func (r *recordFlags) common(today core.Date) (core.Money, core.Date, error) {
	amount, err := core.ParseMoney(r.amount)
	if err != nil {
		return core.Money{}, core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, r.amount)
	}
	date := today
	if r.date != "" {
		if date, err = core.ParseDate(r.date); err != nil {
			return core.Money{}, core.Date{}, err
		}
	}
	return amount, date, nil
}

func (r *recordFlags) income(today core.Date) (core.Income, error) {
	amount, date, err := r.common(today)
	if err != nil {
		return core.Income{}, err
	}
	return core.Income{
		Title:       r.title,
		Category:    r.category,
		Amount:      amount,
		Date:        date,
		Description: r.description,
	}, nil
}

func (r *recordFlags) expense(today core.Date) (core.Expense, error) {
	amount, date, err := r.common(today)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Category:    r.category,
		SubCategory: r.subCategory,
		Amount:      amount,
		Date:        date,
		Description: r.description,
		Type:        core.ExpenseType(r.kind),
	}, nil
}

func runIncomes(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "list")
	switch act {
	case "list":
		fs := newFlagSet("incomes list")
		var lf listFlags
		lf.register(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		q, err := lf.query()
		if err != nil {
			return err
		}
		page, err := a.ledger.ListIncomes(ctx, q, a.today())
		if err != nil {
			return err
		}
		a.out.Incomes(page, a.today())
		return nil

	case "add", "update":
		var id string
		if act == "update" {
			var err error
			if id, rest, err = idArg(rest, "income"); err != nil {
				return err
			}
		}
		fs := newFlagSet("incomes " + act)
		var rf recordFlags
		rf.registerIncome(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		income, err := rf.income(a.today())
		if err != nil {
			return err
		}
		var msg string
		if act == "add" {
			msg, err = a.ledger.AddIncome(ctx, income)
		} else {
			msg, err = a.ledger.UpdateIncome(ctx, id, income)
		}
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	case "delete":
		id, rest, err := idArg(rest, "income")
		if err != nil {
			return err
		}
		if err := newFlagSet("incomes delete").Parse(rest); err != nil {
			return err
		}
		msg, err := a.ledger.DeleteIncome(ctx, id)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	default:
		return fmt.Errorf("unknown incomes action %q: use list, add, update or delete", act)
	}
}

func runExpenses(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "list")
	switch act {
	case "list":
		fs := newFlagSet("expenses list")
		var lf listFlags
		lf.register(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		q, err := lf.query()
		if err != nil {
			return err
		}
		page, err := a.ledger.ListExpenses(ctx, q, a.today())
		if err != nil {
			return err
		}
		a.out.Expenses(page, a.today())
		return nil

	case "add", "update":
		var id string
		if act == "update" {
			var err error
			if id, rest, err = idArg(rest, "expense"); err != nil {
				return err
			}
		}
		fs := newFlagSet("expenses " + act)
		var rf recordFlags
		rf.registerExpense(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		expense, err := rf.expense(a.today())
		if err != nil {
			return err
		}
		var msg string
		if act == "add" {
			msg, err = a.ledger.AddExpense(ctx, expense)
		} else {
			msg, err = a.ledger.UpdateExpense(ctx, id, expense)
		}
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	case "delete":
		id, rest, err := idArg(rest, "expense")
		if err != nil {
			return err
		}
		if err := newFlagSet("expenses delete").Parse(rest); err != nil {
			return err
		}
		msg, err := a.ledger.DeleteExpense(ctx, id)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil

	default:
		return fmt.Errorf("unknown expenses action %q: use list, add, update or delete", act)
	}
}

func runCategories(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "list")
	fs := newFlagSet("categories " + act)
	kind := fs.String("type", string(core.ExpenseCategory), "income or expense")
	title := fs.String("title", "", "new category title")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	k := core.CategoryKind(strings.ToLower(strings.TrimSpace(*kind)))

	switch act {
	case "list":
		titles, err := a.ledger.Categories(ctx, k)
		if err != nil {
			return err
		}
		a.out.List(cases.Title(language.English).String(string(k))+" categories", titles, "No categories yet.")
		return nil
	case "add":
		if *title == "" && fs.NArg() > 0 {
			*title = strings.Join(fs.Args(), " ")
		}
		msg, err := a.ledger.AddCategory(ctx, k, *title)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil
	default:
		return fmt.Errorf("unknown categories action %q: use list or add", act)
	}
}

func runSubCategories(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "list")
	fs := newFlagSet("subcategories " + act)
	category := fs.String("category", "", "expense category")
	title := fs.String("title", "", "new sub-category title")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if err := a.prompt.fill(category, "Category"); err != nil {
		return err
	}

	switch act {
	case "list":
		titles, err := a.ledger.SubCategories(ctx, *category)
		if err != nil {
			return err
		}
		a.out.List(fmt.Sprintf("Sub-categories of %s", *category), titles, "No sub-categories yet.")
		return nil
	case "add":
		if *title == "" && fs.NArg() > 0 {
			*title = strings.Join(fs.Args(), " ")
		}
		msg, err := a.ledger.AddSubCategory(ctx, *category, *title)
		if err != nil {
			return err
		}
		a.out.Message(msg)
		return nil
	default:
		return fmt.Errorf("unknown subcategories action %q: use list or add", act)
	}
}
