package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kerjahub/mea-go/internal/model"
	"github.com/kerjahub/mea-go/internal/service"
)

// stubGenerator returns a canned reply or error.
type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(context.Context, string, int, []string) (string, error) {
	return s.reply, s.err
}

func newTestHandler(gen service.Generator) *AssistantHandler {
	a := service.NewAssistant(gen, "microsoft/Phi-3-mini-4k-instruct", nil)
	return NewAssistantHandler(a)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeChat(t *testing.T, rec *httptest.ResponseRecorder) model.ChatResponse {
	t.Helper()
	var resp model.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestChat(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})

	rec := postJSON(t, h.Chat, `{"message":"do I get overtime pay?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp := decodeChat(t, rec); resp.Reply != "advice" {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})
	rec := postJSON(t, h.Chat, `{"message":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChat_EngineFailure(t *testing.T) {
	h := newTestHandler(&stubGenerator{err: errors.New("engine down")})
	rec := postJSON(t, h.Chat, `{"message":"hi"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	var resp model.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error != "generation_failed" {
		t.Errorf("error code = %q", resp.Error)
	}
}

func TestWorkingHours(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})

	rec := postJSON(t, h.WorkingHours, `{"hours_per_week":55}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeChat(t, rec)
	if !strings.Contains(resp.Report, "EXCEED the legal limit") {
		t.Errorf("report should carry the compliance check, got %q", resp.Report)
	}
}

func TestWorkingHours_NegativeRejected(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})
	rec := postJSON(t, h.WorkingHours, `{"hours_per_week":-3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSalary(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})

	rec := postJSON(t, h.Salary, `{"gross_salary":3000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeChat(t, rec)
	if !strings.Contains(resp.Report, "EPF (11%): RM 330.00") {
		t.Errorf("report should carry the breakdown, got %q", resp.Report)
	}
}

func TestExpenses_DefaultsCity(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})

	rec := postJSON(t, h.Expenses, `{"salary":4000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeChat(t, rec)
	if !strings.Contains(resp.Report, "Kuala Lumpur") {
		t.Errorf("missing city should default to Kuala Lumpur, got %q", resp.Report)
	}
}

func TestRights(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "unused"})

	req := httptest.NewRequest(http.MethodGet, "/v1/rights", nil)
	rec := httptest.NewRecorder()
	h.Rights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp model.RightsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Report, "Employment Act 1955") {
		t.Error("rights report missing act reference")
	}
}

func TestBadJSON(t *testing.T) {
	h := newTestHandler(&stubGenerator{reply: "advice"})
	for name, fn := range map[string]http.HandlerFunc{
		"chat":          h.Chat,
		"working-hours": h.WorkingHours,
		"salary":        h.Salary,
		"expenses":      h.Expenses,
	} {
		rec := postJSON(t, fn, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}
