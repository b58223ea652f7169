package service

import (
	"math"
	"strings"
	"testing"
)

func TestCheckWorkingHours_Compliant(t *testing.T) {
	for _, h := range []float64{0, 20, 40, 48} {
		got := CheckWorkingHours(h)
		if !strings.Contains(got, "comply") {
			t.Errorf("CheckWorkingHours(%g) should report compliant, got %q", h, got)
		}
		if strings.Contains(got, "EXCEED") {
			t.Errorf("CheckWorkingHours(%g) should not report excess", h)
		}
	}
}

func TestCheckWorkingHours_Overtime(t *testing.T) {
	got := CheckWorkingHours(56)
	if !strings.Contains(got, "EXCEED") {
		t.Fatalf("expected non-compliance report, got %q", got)
	}
	if !strings.Contains(got, "Overtime: 8 hours/week") {
		t.Errorf("expected overtime of 8 hours, got %q", got)
	}
	if !strings.Contains(got, "1.5x") {
		t.Error("expected overtime pay rate in remedies text")
	}
}

func TestComputeSalaryFigures_EPFExact(t *testing.T) {
	f := ComputeSalaryFigures(3000)
	if f.EPFEmployee != 330 {
		t.Errorf("EPF employee = %v, want 330", f.EPFEmployee)
	}
	if f.EPFEmployer != 390 {
		t.Errorf("EPF employer = %v, want 390", f.EPFEmployer)
	}
	if f.SOCSOEmployee != 15 {
		t.Errorf("SOCSO employee = %v, want 15", f.SOCSOEmployee)
	}
}

func TestComputeSalaryFigures_SOCSOFlatAboveCeiling(t *testing.T) {
	tests := []struct {
		gross        float64
		wantEmployee float64
		wantEmployer float64
	}{
		{1000, 5, 18},
		{4950, 24.75, 89.10},
		{5000, 24.75, 89.25}, // min(25, 24.75) at the ceiling
		{5001, 24.75, 89.25},
		{20000, 24.75, 89.25},
	}

	for _, tt := range tests {
		f := ComputeSalaryFigures(tt.gross)
		if math.Abs(f.SOCSOEmployee-tt.wantEmployee) > 1e-9 {
			t.Errorf("gross %g: SOCSO employee = %v, want %v", tt.gross, f.SOCSOEmployee, tt.wantEmployee)
		}
		if math.Abs(f.SOCSOEmployer-tt.wantEmployer) > 1e-9 {
			t.Errorf("gross %g: SOCSO employer = %v, want %v", tt.gross, f.SOCSOEmployer, tt.wantEmployer)
		}
	}
}

func TestComputeSalaryFigures_EISCapped(t *testing.T) {
	f := ComputeSalaryFigures(3000)
	if math.Abs(f.EISEmployee-6) > 1e-9 {
		t.Errorf("EIS employee = %v, want 6", f.EISEmployee)
	}

	f = ComputeSalaryFigures(10000)
	if f.EISEmployee != 7.90 {
		t.Errorf("EIS employee above cap = %v, want 7.90", f.EISEmployee)
	}
}

func TestComputeSalaryFigures_NetPay(t *testing.T) {
	f := ComputeSalaryFigures(3000)
	wantDeductions := 330.0 + 15.0 + 6.0
	if math.Abs(f.TotalDeductions-wantDeductions) > 1e-9 {
		t.Errorf("total deductions = %v, want %v", f.TotalDeductions, wantDeductions)
	}
	if math.Abs(f.NetPay-(3000-wantDeductions)) > 1e-9 {
		t.Errorf("net pay = %v, want %v", f.NetPay, 3000-wantDeductions)
	}
}

func TestSalaryBreakdown_Rendering(t *testing.T) {
	got := SalaryBreakdown(3000)
	for _, want := range []string{
		"RM 3000.00",
		"EPF (11%): RM 330.00",
		"EPF (13%): RM 390.00",
		"SOCSO: RM 15.00",
		"Net Pay",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("breakdown missing %q:\n%s", want, got)
		}
	}
}

func TestComputeBudgetFigures_ZeroSalary(t *testing.T) {
	b := ComputeBudgetFigures("Kuala Lumpur", 0)
	if b.SavingsRate != 0 {
		t.Errorf("savings rate for zero salary = %v, want 0", b.SavingsRate)
	}
	if b.Savings >= 0 {
		t.Errorf("savings for zero salary should be negative, got %v", b.Savings)
	}
}

func TestComputeBudgetFigures_KualaLumpurTotals(t *testing.T) {
	b := ComputeBudgetFigures("Kuala Lumpur", 6000)
	// 1200+150+600+200+100+200 and 2500+300+1200+500+300+500
	if b.TotalMin != 2450 {
		t.Errorf("total min = %v, want 2450", b.TotalMin)
	}
	if b.TotalMax != 5300 {
		t.Errorf("total max = %v, want 5300", b.TotalMax)
	}
	if b.TotalAvg != 3875 {
		t.Errorf("total avg = %v, want 3875", b.TotalAvg)
	}
	if math.Abs(b.Savings-2125) > 1e-9 {
		t.Errorf("savings = %v, want 2125", b.Savings)
	}
}

func TestComputeBudgetFigures_UnknownCityFallsBack(t *testing.T) {
	atlantis := ComputeBudgetFigures("Atlantis", 5000)
	kl := ComputeBudgetFigures("Kuala Lumpur", 5000)
	if atlantis.CityKey != "kuala_lumpur" {
		t.Errorf("city key = %q, want kuala_lumpur", atlantis.CityKey)
	}
	if atlantis.TotalAvg != kl.TotalAvg {
		t.Errorf("fallback totals differ: %v vs %v", atlantis.TotalAvg, kl.TotalAvg)
	}
}

func TestHealthLabel_Tiers(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{35, "Good"},
		{20, "Good"},
		{19.9, "Consider budgeting"},
		{10, "Consider budgeting"},
		{9.9, "Tight budget"},
		{0, "Tight budget"},
		{-5, "Tight budget"},
	}
	for _, tt := range tests {
		if got := healthLabel(tt.rate); !strings.Contains(got, tt.want) {
			t.Errorf("healthLabel(%g) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestExpenseBudget_Rendering(t *testing.T) {
	got := ExpenseBudget("penang", 4000)
	for _, want := range []string{
		"Living Expenses Budget for Penang",
		"Rent (1BR): 800 - 1800",
		"Your Salary: RM 4000.00",
		"Financial Health:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("budget report missing %q:\n%s", want, got)
		}
	}
}

func TestEmploymentRights_ContainsStatutoryFigures(t *testing.T) {
	got := EmploymentRights()
	for _, want := range []string{
		"8 hours/day, 48 hours/week",
		"RM 1500/month",
		"8-16 days",
		"14 days outpatient, 60 days hospitalization",
		"Minimum 11 days",
		"Department of Labour: 1-300-80-8000",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rights summary missing %q", want)
		}
	}
}
