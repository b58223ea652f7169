package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kerjahub/mea-go/internal/model"
	"github.com/kerjahub/mea-go/internal/service"
)

// AssistantHandler serves the advice endpoints. One assistant instance
// is shared across requests; it carries no per-conversation state.
type AssistantHandler struct {
	assistant *service.Assistant
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(a *service.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

// Chat handles POST /v1/chat: one free-form single-turn exchange.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "message is required")
		return
	}

	start := time.Now()
	reply, err := h.assistant.Chat(r.Context(), req.Message)
	if err != nil {
		h.generationFailed(w, r, err)
		return
	}
	slog.Info("chat served",
		"request_id", chimw.GetReqID(r.Context()),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	writeJSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
}

// WorkingHours handles POST /v1/working-hours.
func (h *AssistantHandler) WorkingHours(w http.ResponseWriter, r *http.Request) {
	var req model.WorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if !validNumber(req.HoursPerWeek) {
		writeError(w, http.StatusBadRequest, "bad_request", "hours_per_week must be a non-negative number")
		return
	}

	reply, err := h.assistant.AskWorkingHours(r.Context(), req.HoursPerWeek)
	if err != nil {
		h.generationFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Reply:  reply,
		Report: service.CheckWorkingHours(req.HoursPerWeek),
	})
}

// Salary handles POST /v1/salary.
func (h *AssistantHandler) Salary(w http.ResponseWriter, r *http.Request) {
	var req model.SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if !validNumber(req.GrossSalary) {
		writeError(w, http.StatusBadRequest, "bad_request", "gross_salary must be a non-negative number")
		return
	}

	reply, err := h.assistant.AskSalary(r.Context(), req.GrossSalary)
	if err != nil {
		h.generationFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Reply:  reply,
		Report: service.SalaryBreakdown(req.GrossSalary),
	})
}

// Expenses handles POST /v1/expenses.
func (h *AssistantHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	var req model.ExpensesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if req.City == "" {
		req.City = "Kuala Lumpur"
	}
	if !validNumber(req.Salary) {
		writeError(w, http.StatusBadRequest, "bad_request", "salary must be a non-negative number")
		return
	}

	reply, err := h.assistant.AskExpenses(r.Context(), req.City, req.Salary)
	if err != nil {
		h.generationFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Reply:  reply,
		Report: service.ExpenseBudget(req.City, req.Salary),
	})
}

// Rights handles GET /v1/rights. Deterministic, no model call.
func (h *AssistantHandler) Rights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.RightsResponse{
		Report: service.EmploymentRights(),
	})
}

// generationFailed logs the engine error and reports a 502. The error
// stays an error all the way out — it is never folded into reply text.
func (h *AssistantHandler) generationFailed(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("generation failed",
		"error", err,
		"request_id", chimw.GetReqID(r.Context()),
	)
	writeError(w, http.StatusBadGateway, "generation_failed", "the model engine did not return a reply")
}

// validNumber rejects negative, NaN and infinite inputs before they
// reach the formatters, which assume validated numbers.
func validNumber(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
