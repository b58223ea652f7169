// Package model defines the request and response types for the HTTP API.
package model

// TokenRequest is the POST /v1/auth/token request body.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse is the POST /v1/auth/token response body.
type TokenResponse struct {
	Token   string `json:"token"`
	KeyName string `json:"key_name"`
}

// ChatRequest is the POST /v1/chat request body.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply for chat and advice endpoints. Report is
// the deterministic calculation the advice was grounded on, empty for
// free-form chat.
type ChatResponse struct {
	Reply  string `json:"reply"`
	Report string `json:"report,omitempty"`
}

// WorkingHoursRequest is the POST /v1/working-hours request body.
type WorkingHoursRequest struct {
	HoursPerWeek float64 `json:"hours_per_week"`
}

// SalaryRequest is the POST /v1/salary request body.
type SalaryRequest struct {
	GrossSalary float64 `json:"gross_salary"`
}

// ExpensesRequest is the POST /v1/expenses request body.
type ExpensesRequest struct {
	City   string  `json:"city"`
	Salary float64 `json:"salary"`
}

// RightsResponse is the GET /v1/rights response body.
type RightsResponse struct {
	Report string `json:"report"`
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
