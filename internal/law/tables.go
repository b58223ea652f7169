// Package law holds the statutory figures and living-expense tables the
// assistant reasons over. All values are fixed at process start and
// read-only thereafter.
package law

import "strings"

// EmploymentLaw captures the Employment Act 1955 figures used by the
// compliance and salary calculations.
type EmploymentLaw struct {
	MaxHoursPerDay      float64
	MaxHoursPerWeek     float64
	MaxOvertimePerMonth float64
	MinimumWageMYR      float64
	PublicHolidaysMin   int

	// Annual leave entitlement in days, by length of service.
	AnnualLeaveUnder2Years int
	AnnualLeave2To5Years   int
	AnnualLeaveOver5Years  int

	// Sick leave entitlement in days.
	SickLeaveHospitalization int
	SickLeaveOutpatient      int

	EPFEmployeeRate float64
	EPFEmployerRate float64
}

// Act is the Employment Act 1955 figure set (2024 revision).
var Act = EmploymentLaw{
	MaxHoursPerDay:      8,
	MaxHoursPerWeek:     48,
	MaxOvertimePerMonth: 104,
	MinimumWageMYR:      1500,
	PublicHolidaysMin:   11,

	AnnualLeaveUnder2Years: 8,
	AnnualLeave2To5Years:   12,
	AnnualLeaveOver5Years:  16,

	SickLeaveHospitalization: 60,
	SickLeaveOutpatient:      14,

	EPFEmployeeRate: 0.11,
	EPFEmployerRate: 0.13,
}

// Statutory contribution rates and caps for SOCSO and EIS. Both schemes
// switch to a flat contribution above the wage ceiling.
const (
	SOCSOEmployeeRate = 0.005
	SOCSOEmployeeCap  = 24.75
	SOCSOEmployerRate = 0.018
	SOCSOEmployerCap  = 89.25
	SOCSOWageCeiling  = 5000

	EISRate = 0.002
	EISCap  = 7.90
)

// ExpenseRange is a monthly spend band in MYR for one category.
type ExpenseRange struct {
	Min float64
	Max float64
}

// ExpenseCategories lists the budget categories in display order.
// Every city table carries every category.
var ExpenseCategories = []string{
	"rent_1br",
	"utilities",
	"food",
	"transport",
	"healthcare",
	"entertainment",
}

// CategoryLabels maps category keys to their display names.
var CategoryLabels = map[string]string{
	"rent_1br":      "Rent (1BR)",
	"utilities":     "Utilities",
	"food":          "Food",
	"transport":     "Transport",
	"healthcare":    "Healthcare",
	"entertainment": "Entertainment",
}

// DefaultCity is the fallback when a city name is not recognized.
const DefaultCity = "kuala_lumpur"

// Expenses maps city key -> category -> monthly range in MYR.
var Expenses = map[string]map[string]ExpenseRange{
	"kuala_lumpur": {
		"rent_1br":      {Min: 1200, Max: 2500},
		"utilities":     {Min: 150, Max: 300},
		"food":          {Min: 600, Max: 1200},
		"transport":     {Min: 200, Max: 500},
		"healthcare":    {Min: 100, Max: 300},
		"entertainment": {Min: 200, Max: 500},
	},
	"penang": {
		"rent_1br":      {Min: 800, Max: 1800},
		"utilities":     {Min: 120, Max: 250},
		"food":          {Min: 500, Max: 1000},
		"transport":     {Min: 150, Max: 400},
		"healthcare":    {Min: 80, Max: 250},
		"entertainment": {Min: 150, Max: 400},
	},
	"johor_bahru": {
		"rent_1br":      {Min: 700, Max: 1500},
		"utilities":     {Min: 120, Max: 250},
		"food":          {Min: 450, Max: 900},
		"transport":     {Min: 150, Max: 350},
		"healthcare":    {Min: 80, Max: 250},
		"entertainment": {Min: 150, Max: 350},
	},
}

// NormalizeCity converts a user-entered city name to a table key.
// Unrecognized cities fall back to Kuala Lumpur.
func NormalizeCity(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if _, ok := Expenses[key]; !ok {
		return DefaultCity
	}
	return key
}

// CityExpenses returns the expense table for a user-entered city name,
// applying the Kuala Lumpur fallback.
func CityExpenses(name string) map[string]ExpenseRange {
	return Expenses[NormalizeCity(name)]
}
