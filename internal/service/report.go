// Package service provides the assistant's business logic: report
// formatting, prompt assembly, text generation, and token auth.
package service

import (
	"fmt"
	"strings"

	"github.com/kerjahub/mea-go/internal/law"
)

// CheckWorkingHours renders a compliance report for a weekly hour count.
// Exactly at the statutory cap is compliant.
func CheckWorkingHours(hoursPerWeek float64) string {
	act := law.Act

	if hoursPerWeek <= act.MaxHoursPerWeek {
		return fmt.Sprintf(
			"✅ Your working hours (%g hrs/week) comply with Malaysian Employment Act (max %g hrs/week).",
			hoursPerWeek, act.MaxHoursPerWeek,
		)
	}

	overtime := hoursPerWeek - act.MaxHoursPerWeek
	return fmt.Sprintf(`⚠️ Your working hours (%g hrs/week) EXCEED the legal limit of %g hrs/week.

Overtime: %g hours/week
Legal rights:
- Overtime must be paid at 1.5x your hourly rate
- Maximum overtime: %g hours/month
- You have the right to refuse excessive overtime

Recommendation: Discuss with your employer about compliance with Employment Act 1955.`,
		hoursPerWeek, act.MaxHoursPerWeek, overtime, act.MaxOvertimePerMonth)
}

// SalaryFigures holds the statutory deductions computed from a gross
// monthly salary.
type SalaryFigures struct {
	Gross           float64
	EPFEmployee     float64
	EPFEmployer     float64
	SOCSOEmployee   float64
	SOCSOEmployer   float64
	EISEmployee     float64
	EISEmployer     float64
	TotalDeductions float64
	NetPay          float64
}

// ComputeSalaryFigures applies the EPF, SOCSO and EIS contribution
// rules to a gross salary. SOCSO contributions go flat above the wage
// ceiling; EIS is capped on both sides.
func ComputeSalaryFigures(gross float64) SalaryFigures {
	act := law.Act

	f := SalaryFigures{
		Gross:       gross,
		EPFEmployee: gross * act.EPFEmployeeRate,
		EPFEmployer: gross * act.EPFEmployerRate,
	}

	if gross <= law.SOCSOWageCeiling {
		f.SOCSOEmployee = min(gross*law.SOCSOEmployeeRate, law.SOCSOEmployeeCap)
		f.SOCSOEmployer = min(gross*law.SOCSOEmployerRate, law.SOCSOEmployerCap)
	} else {
		f.SOCSOEmployee = law.SOCSOEmployeeCap
		f.SOCSOEmployer = law.SOCSOEmployerCap
	}

	f.EISEmployee = min(gross*law.EISRate, law.EISCap)
	f.EISEmployer = min(gross*law.EISRate, law.EISCap)

	f.TotalDeductions = f.EPFEmployee + f.SOCSOEmployee + f.EISEmployee
	f.NetPay = gross - f.TotalDeductions
	return f
}

// SalaryBreakdown renders the statutory deduction report for a gross
// monthly salary.
func SalaryBreakdown(gross float64) string {
	f := ComputeSalaryFigures(gross)

	return fmt.Sprintf(`💰 Salary Breakdown for RM %.2f

Employee Deductions:
- EPF (11%%): RM %.2f
- SOCSO: RM %.2f
- EIS: RM %.2f
- Total Deductions: RM %.2f

💵 Your Net Pay: RM %.2f

Employer Contributions:
- EPF (13%%): RM %.2f
- SOCSO: RM %.2f
- EIS: RM %.2f
- Total: RM %.2f`,
		f.Gross,
		f.EPFEmployee, f.SOCSOEmployee, f.EISEmployee, f.TotalDeductions,
		f.NetPay,
		f.EPFEmployer, f.SOCSOEmployer, f.EISEmployer,
		f.EPFEmployer+f.SOCSOEmployer+f.EISEmployer)
}

// BudgetFigures holds the expense totals and savings outlook for a
// city/salary pair.
type BudgetFigures struct {
	CityKey     string
	TotalMin    float64
	TotalMax    float64
	TotalAvg    float64
	Savings     float64
	SavingsRate float64
}

// ComputeBudgetFigures sums the city's expense ranges and derives the
// savings rate. A zero or negative salary yields a zero rate rather
// than dividing by zero.
func ComputeBudgetFigures(city string, salary float64) BudgetFigures {
	key := law.NormalizeCity(city)
	table := law.Expenses[key]

	b := BudgetFigures{CityKey: key}
	for _, cat := range law.ExpenseCategories {
		b.TotalMin += table[cat].Min
		b.TotalMax += table[cat].Max
	}
	b.TotalAvg = (b.TotalMin + b.TotalMax) / 2
	b.Savings = salary - b.TotalAvg
	if salary > 0 {
		b.SavingsRate = b.Savings / salary * 100
	}
	return b
}

// healthLabel classifies the savings rate into the three advice tiers.
func healthLabel(savingsRate float64) string {
	switch {
	case savingsRate >= 20:
		return "✅ Good"
	case savingsRate >= 10:
		return "⚠️ Consider budgeting"
	default:
		return "❌ Tight budget"
	}
}

// ExpenseBudget renders the living-expense budget report for a city and
// monthly salary. Unrecognized cities use the Kuala Lumpur table.
func ExpenseBudget(city string, salary float64) string {
	b := ComputeBudgetFigures(city, salary)
	table := law.Expenses[b.CityKey]

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏙️ Living Expenses Budget for %s\n\n", titleCase(city))
	sb.WriteString("Monthly Expenses (RM):\n")
	for _, cat := range law.ExpenseCategories {
		r := table[cat]
		fmt.Fprintf(&sb, "- %s: %.0f - %.0f\n", law.CategoryLabels[cat], r.Min, r.Max)
	}
	fmt.Fprintf(&sb, "\nTotal Range: RM %.2f - RM %.2f\n", b.TotalMin, b.TotalMax)
	fmt.Fprintf(&sb, "Average: RM %.2f\n\n", b.TotalAvg)
	fmt.Fprintf(&sb, "Your Salary: RM %.2f\n", salary)
	fmt.Fprintf(&sb, "Estimated Savings: RM %.2f (%.1f%%)\n\n", b.Savings, b.SavingsRate)
	fmt.Fprintf(&sb, "💡 Financial Health: %s", healthLabel(b.SavingsRate))
	return sb.String()
}

// titleCase upper-cases the first letter of each space-separated word,
// for display of user-entered city names.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// EmploymentRights renders the static employment-rights summary from
// the statutory tables. Pure formatting, no model call.
func EmploymentRights() string {
	act := law.Act

	return fmt.Sprintf(`📋 Malaysian Employment Rights (Employment Act 1955)

Working Hours:
- Standard: %g hours/day, %g hours/week
- Overtime: Max %g hours/month
- Rest days: 1 day per week (minimum)

Minimum Wage:
- RM %g/month (as of 2024)

Leave Entitlements:
- Annual Leave: %d-%d days (based on service)
- Sick Leave: %d days outpatient, %d days hospitalization
- Public Holidays: Minimum %d days
- Maternity Leave: 98 days (14 weeks)

Termination Rights:
- Notice period required (varies by service length)
- Severance pay for retrenchment
- Protection against unfair dismissal

How to Deal with Boss Issues:
1. Document everything (emails, messages, incidents)
2. Know your employment contract terms
3. Communicate professionally and in writing
4. Escalate to HR if direct communication fails
5. Contact Department of Labour for violations
6. Consider Industrial Relations Department for disputes

Resources:
- Department of Labour: 1-300-80-8000
- Employment Act 1955 compliance queries`,
		act.MaxHoursPerDay, act.MaxHoursPerWeek, act.MaxOvertimePerMonth,
		act.MinimumWageMYR,
		act.AnnualLeaveUnder2Years, act.AnnualLeaveOver5Years,
		act.SickLeaveOutpatient, act.SickLeaveHospitalization,
		act.PublicHolidaysMin)
}
