package services

import (
	"context"
	"sync"
	"time"

	"wealthify/internal/amqp"
	"wealthify/internal/api"
	"wealthify/internal/core"
	"wealthify/internal/session"
)

// fakeAPI implements every service port. Calls are recorded by name.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	err error

	incomes  []core.Income
	expenses []core.Expense
	stats    core.Stats
	budgets  *core.BudgetSet
	profile  core.User
	cats     map[core.CategoryKind][]core.Category
	subs     map[string][]core.SubCategory

	lastFilter  api.ListFilter
	lastIncome  core.Income
	lastExpense core.Expense
	lastID      string
	lastBudgets map[string]core.Money
	lastLogin   api.LoginRequest
	lastReg     api.RegisterRequest
	lastPwd     api.UpdatePasswordRequest
	lastProfile api.UpdateProfileRequest
	lastOTP     api.VerifyOTPRequest
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

var okResp = api.MessageResponse{Message: "ok"}

func (f *fakeAPI) Check(context.Context) error { return f.record("Check") }

func (f *fakeAPI) Login(_ context.Context, req api.LoginRequest) (api.AuthResponse, error) {
	f.lastLogin = req
	if err := f.record("Login"); err != nil {
		return api.AuthResponse{}, err
	}
	return api.AuthResponse{Token: "tok", Data: f.profile}, nil
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) (api.AuthResponse, error) {
	f.lastReg = req
	if err := f.record("Register"); err != nil {
		return api.AuthResponse{}, err
	}
	return api.AuthResponse{Token: "tok", User: f.profile}, nil
}

func (f *fakeAPI) VerifyOTP(_ context.Context, req api.VerifyOTPRequest) (api.MessageResponse, error) {
	f.lastOTP = req
	return okResp, f.record("VerifyOTP")
}

func (f *fakeAPI) ResendOTP(context.Context, api.ResendOTPRequest) (api.MessageResponse, error) {
	return okResp, f.record("ResendOTP")
}

func (f *fakeAPI) GetProfile(context.Context) (core.User, error) {
	return f.profile, f.record("GetProfile")
}

func (f *fakeAPI) UpdateProfile(_ context.Context, req api.UpdateProfileRequest) (api.MessageResponse, error) {
	f.lastProfile = req
	if err := f.record("UpdateProfile"); err != nil {
		return api.MessageResponse{}, err
	}
	f.profile.Username = req.Username
	return okResp, nil
}

func (f *fakeAPI) UpdatePassword(_ context.Context, req api.UpdatePasswordRequest) (api.MessageResponse, error) {
	f.lastPwd = req
	return okResp, f.record("UpdatePassword")
}

func (f *fakeAPI) GetIncomes(_ context.Context, filter api.ListFilter) ([]core.Income, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	return f.incomes, f.record("GetIncomes")
}

func (f *fakeAPI) AddIncome(_ context.Context, income core.Income) (api.MessageResponse, error) {
	f.lastIncome = income
	return okResp, f.record("AddIncome")
}

func (f *fakeAPI) UpdateIncome(_ context.Context, id string, income core.Income) (api.MessageResponse, error) {
	f.lastID, f.lastIncome = id, income
	return okResp, f.record("UpdateIncome")
}

func (f *fakeAPI) DeleteIncome(_ context.Context, id string) (api.MessageResponse, error) {
	f.lastID = id
	return okResp, f.record("DeleteIncome")
}

func (f *fakeAPI) GetExpenses(_ context.Context, filter api.ListFilter) (api.ExpenseList, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	return api.ExpenseList{Expenses: f.expenses}, f.record("GetExpenses")
}

func (f *fakeAPI) AddExpense(_ context.Context, expense core.Expense) (api.MessageResponse, error) {
	f.lastExpense = expense
	return okResp, f.record("AddExpense")
}

func (f *fakeAPI) UpdateExpense(_ context.Context, id string, expense core.Expense) (api.MessageResponse, error) {
	f.lastID, f.lastExpense = id, expense
	return okResp, f.record("UpdateExpense")
}

func (f *fakeAPI) DeleteExpense(_ context.Context, id string) (api.MessageResponse, error) {
	f.lastID = id
	return okResp, f.record("DeleteExpense")
}

func (f *fakeAPI) GetStats(context.Context) (core.Stats, error) {
	return f.stats, f.record("GetStats")
}

func (f *fakeAPI) GetCategories(_ context.Context, kind core.CategoryKind) ([]core.Category, error) {
	return f.cats[kind], f.record("GetCategories")
}

func (f *fakeAPI) AddCategory(_ context.Context, req api.AddCategoryRequest) (api.MessageResponse, error) {
	if err := f.record("AddCategory"); err != nil {
		return api.MessageResponse{}, err
	}
	f.cats[req.Type] = append(f.cats[req.Type], core.Category{Title: req.Title, Type: req.Type})
	return okResp, nil
}

func (f *fakeAPI) GetSubCategories(_ context.Context, category string) ([]core.SubCategory, error) {
	return f.subs[category], f.record("GetSubCategories")
}

func (f *fakeAPI) AddSubCategory(_ context.Context, req api.AddSubCategoryRequest) (api.MessageResponse, error) {
	if err := f.record("AddSubCategory"); err != nil {
		return api.MessageResponse{}, err
	}
	f.subs[req.Category] = append(f.subs[req.Category], core.SubCategory{Title: req.Title, Category: req.Category})
	return okResp, nil
}

func (f *fakeAPI) GetBudgets(context.Context) (*core.BudgetSet, error) {
	return f.budgets, f.record("GetBudgets")
}

func (f *fakeAPI) AddBudgets(_ context.Context, budgets map[string]core.Money) (api.MessageResponse, error) {
	f.lastBudgets = budgets
	return okResp, f.record("AddBudgets")
}

func (f *fakeAPI) UpdateBudgets(_ context.Context, id string, budgets map[string]core.Money) (api.MessageResponse, error) {
	f.lastID, f.lastBudgets = id, budgets
	return okResp, f.record("UpdateBudgets")
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cats: map[core.CategoryKind][]core.Category{},
		subs: map[string][]core.SubCategory{},
	}
}

// fakeSession is an in-memory SessionState.
type fakeSession struct {
	user        *core.User
	expiry      time.Time
	invalidated bool
}

func (s *fakeSession) User(context.Context) (core.User, bool, error) {
	if s.user == nil {
		return core.User{}, false, nil
	}
	return *s.user, true, nil
}

func (s *fakeSession) State(context.Context) (session.State, error) {
	if s.user == nil {
		return session.Unauthenticated, nil
	}
	return session.Authenticated, nil
}

func (s *fakeSession) Expiry(context.Context) (time.Time, bool, error) {
	return s.expiry, !s.expiry.IsZero(), nil
}

func (s *fakeSession) Invalidate(context.Context) error {
	s.user = nil
	s.invalidated = true
	return nil
}

type fakeQueue struct {
	published []*amqp.ReportRequestMessage
	err       error
}

func (q *fakeQueue) PublishReportRequest(_ context.Context, msg *amqp.ReportRequestMessage) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, msg)
	return nil
}

func amt(units int64) core.Money { return core.Money{Cents: units * 100} }
