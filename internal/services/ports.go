package services

import (
	"context"
	"time"

	"wealthify/internal/amqp"
	"wealthify/internal/api"
	"wealthify/internal/core"
	"wealthify/internal/session"
)

// The service ports are satisfied by *api.Client and *session.Manager.
type (
	AuthAPI interface {
		Check(ctx context.Context) error
		Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error)
		Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
		VerifyOTP(ctx context.Context, req api.VerifyOTPRequest) (api.MessageResponse, error)
		ResendOTP(ctx context.Context, req api.ResendOTPRequest) (api.MessageResponse, error)
		GetProfile(ctx context.Context) (core.User, error)
		UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (api.MessageResponse, error)
		UpdatePassword(ctx context.Context, req api.UpdatePasswordRequest) (api.MessageResponse, error)
	}

	SessionState interface {
		User(ctx context.Context) (core.User, bool, error)
		State(ctx context.Context) (session.State, error)
		Expiry(ctx context.Context) (time.Time, bool, error)
		Invalidate(ctx context.Context) error
	}

	IncomeAPI interface {
		GetIncomes(ctx context.Context, filter api.ListFilter) ([]core.Income, error)
		AddIncome(ctx context.Context, income core.Income) (api.MessageResponse, error)
		UpdateIncome(ctx context.Context, id string, income core.Income) (api.MessageResponse, error)
		DeleteIncome(ctx context.Context, id string) (api.MessageResponse, error)
	}

	ExpenseAPI interface {
		GetExpenses(ctx context.Context, filter api.ListFilter) (api.ExpenseList, error)
		AddExpense(ctx context.Context, expense core.Expense) (api.MessageResponse, error)
		UpdateExpense(ctx context.Context, id string, expense core.Expense) (api.MessageResponse, error)
		DeleteExpense(ctx context.Context, id string) (api.MessageResponse, error)
	}

	TaxonomyAPI interface {
		GetCategories(ctx context.Context, kind core.CategoryKind) ([]core.Category, error)
		AddCategory(ctx context.Context, req api.AddCategoryRequest) (api.MessageResponse, error)
		GetSubCategories(ctx context.Context, category string) ([]core.SubCategory, error)
		AddSubCategory(ctx context.Context, req api.AddSubCategoryRequest) (api.MessageResponse, error)
	}

	LedgerAPI interface {
		IncomeAPI
		ExpenseAPI
		TaxonomyAPI
	}

	BudgetAPI interface {
		GetExpenses(ctx context.Context, filter api.ListFilter) (api.ExpenseList, error)
		GetStats(ctx context.Context) (core.Stats, error)
		GetBudgets(ctx context.Context) (*core.BudgetSet, error)
		AddBudgets(ctx context.Context, budgets map[string]core.Money) (api.MessageResponse, error)
		UpdateBudgets(ctx context.Context, id string, budgets map[string]core.Money) (api.MessageResponse, error)
	}

	DashboardAPI interface {
		GetStats(ctx context.Context) (core.Stats, error)
		GetIncomes(ctx context.Context, filter api.ListFilter) ([]core.Income, error)
		GetExpenses(ctx context.Context, filter api.ListFilter) (api.ExpenseList, error)
	}

	ReportAPI interface {
		GetIncomes(ctx context.Context, filter api.ListFilter) ([]core.Income, error)
		GetExpenses(ctx context.Context, filter api.ListFilter) (api.ExpenseList, error)
		GetBudgets(ctx context.Context) (*core.BudgetSet, error)
	}

	// ReportQueue hands report requests to the report worker.
	ReportQueue interface {
		PublishReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error
	}
)
