package api

import (
	"net/url"
	"strconv"

	"wealthify/internal/core"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthResponse is returned by login and register. The profile comes back in
// both data and user depending on the server version.
type AuthResponse struct {
	Message string    `json:"message,omitempty"`
	Token   string    `json:"token"`
	Data    core.User `json:"data"`
	User    core.User `json:"user"`
}

// Profile returns whichever of Data or User is populated.
func (r AuthResponse) Profile() core.User {
	if r.Data != (core.User{}) {
		return r.Data
	}
	return r.User
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

// MessageResponse is the body of mutation endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
}

type UpdatePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// ListFilter narrows income and expense lists. Zero fields are omitted.
type ListFilter struct {
	// Type is a range preset: 1 today, 2 this month, 3 this year.
	Type      int
	StartDate core.Date
	EndDate   core.Date
	Keyword   string
}

func (f ListFilter) Query() url.Values {
	q := url.Values{}
	if f.Type != 0 {
		q.Set("type", strconv.Itoa(f.Type))
	}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.String())
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.String())
	}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	return q
}

type ExpenseList struct {
	Expenses      []core.Expense `json:"expenses"`
	TotalExpenses core.Money     `json:"total_expenses"`
}

type AddCategoryRequest struct {
	Title string            `json:"title"`
	Type  core.CategoryKind `json:"type"`
}

type AddSubCategoryRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// BudgetsRequest is the body of add-budgets and update-budgets.
type BudgetsRequest struct {
	Budgets map[string]core.Money `json:"budgets"`
}

type profileEnvelope struct {
	Data core.User `json:"data"`
}

type statsEnvelope struct {
	Response core.Stats `json:"response"`
}

type budgetsEnvelope struct {
	Response *core.BudgetSet `json:"response"`
}

type errorBody struct {
	Message string `json:"message"`
}
