package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPropertyName = "Unnamed Property"
	MaxNameLength       = 120
)

// Loan describes fixed-rate acquisition debt.
// Units:
// - LoanAmount: currency
// - InterestRate: annual fraction (0.065 = 6.5%); raw values > 1 are read as percent
// - TermYears, AmortizationYears: years (AmortizationYears defaults to TermYears)
type Loan struct {
	LoanAmount        float64 `json:"loan_amount" yaml:"loan_amount"`
	InterestRate      float64 `json:"interest_rate" yaml:"interest_rate"`
	TermYears         int     `json:"term_years" yaml:"term_years"`
	AmortizationYears int     `json:"amortization_years,omitempty" yaml:"amortization_years"`
}

// Normalized returns a copy with the percent/fraction ambiguity resolved and
// defaults applied. The receiver is left untouched.
func (l Loan) Normalized() Loan {
	out := l
	if out.InterestRate > 1 {
		out.InterestRate /= 100
	}
	if out.InterestRate < 0 || math.IsNaN(out.InterestRate) {
		out.InterestRate = 0
	}
	if out.TermYears == 0 {
		out.TermYears = 30
	}
	if out.AmortizationYears <= 0 {
		out.AmortizationYears = out.TermYears
	}
	return out
}

// AmortYears is the amortization length actually used for the payment.
func (l Loan) AmortYears() int {
	if l.AmortizationYears > 0 {
		return l.AmortizationYears
	}
	return l.TermYears
}

func (l Loan) Validate() error {
	if l.LoanAmount < 0 {
		return errors.New("loan_amount must be >= 0")
	}
	if l.InterestRate < 0 {
		return errors.New("interest_rate must be >= 0")
	}
	if l.TermYears < 1 {
		return errors.New("term_years must be >= 1")
	}
	if l.AmortizationYears < 0 {
		return errors.New("amortization_years must be >= 1 when set")
	}
	return nil
}

// PropertyInput is everything the simulator needs to project one property.
// Monetary fields are monthly unless noted; growth, vacancy and appreciation
// parameters are annual fractions.
type PropertyInput struct {
	Name string `json:"name" yaml:"name"`

	PurchasePrice         float64 `json:"purchase_price" yaml:"purchase_price"`
	MonthlyRent           float64 `json:"monthly_rent" yaml:"monthly_rent"`
	MonthlyExpenses       float64 `json:"monthly_expenses" yaml:"monthly_expenses"`
	TaxesInsuranceMonthly float64 `json:"taxes_insurance_monthly" yaml:"taxes_insurance_monthly"`
	CapexReserveMonthly   float64 `json:"capex_reserve_monthly" yaml:"capex_reserve_monthly"`

	RentGrowthMean    float64 `json:"rent_growth_mean" yaml:"rent_growth_mean"`
	RentGrowthStd     float64 `json:"rent_growth_std" yaml:"rent_growth_std"`
	ExpenseGrowthMean float64 `json:"expense_growth_mean" yaml:"expense_growth_mean"`
	ExpenseGrowthStd  float64 `json:"expense_growth_std" yaml:"expense_growth_std"`

	VacancyRateAnnual float64 `json:"vacancy_rate_annual" yaml:"vacancy_rate_annual"`
	VacancyVolatility float64 `json:"vacancy_volatility" yaml:"vacancy_volatility"`

	AppreciationMean float64 `json:"appreciation_mean" yaml:"appreciation_mean"`
	// AppreciationStd is accepted for completeness; the sale value uses the mean only.
	AppreciationStd float64 `json:"appreciation_std" yaml:"appreciation_std"`

	MaintenanceShockLambda  float64 `json:"maintenance_shock_lambda" yaml:"maintenance_shock_lambda"`
	MaintenanceShockAvgCost float64 `json:"maintenance_shock_avg_cost" yaml:"maintenance_shock_avg_cost"`

	HoldYears int   `json:"hold_years" yaml:"hold_years"`
	Loan      *Loan `json:"loan,omitempty" yaml:"loan"`
}

// DefaultProperty returns the market assumptions used when a caller only
// supplies prices, rents and expenses.
func DefaultProperty() PropertyInput {
	return PropertyInput{
		Name:                    DefaultPropertyName,
		RentGrowthMean:          0.03,
		RentGrowthStd:           0.01,
		ExpenseGrowthMean:       0.02,
		ExpenseGrowthStd:        0.01,
		VacancyRateAnnual:       0.06,
		VacancyVolatility:       0.02,
		AppreciationMean:        0.025,
		AppreciationStd:         0.03,
		MaintenanceShockLambda:  0.15,
		MaintenanceShockAvgCost: 1200,
		HoldYears:               10,
	}
}

// DecodePropertyJSON decodes raw over DefaultProperty, so absent keys keep
// the market defaults.
func DecodePropertyJSON(raw []byte) (PropertyInput, error) {
	p := DefaultProperty()
	if err := json.Unmarshal(raw, &p); err != nil {
		return PropertyInput{}, err
	}
	return p, nil
}

// NewProperty normalizes and validates p, returning the cleaned copy.
func NewProperty(p PropertyInput) (PropertyInput, error) {
	out := p.Normalized()
	if err := out.Validate(); err != nil {
		return PropertyInput{}, err
	}
	return out, nil
}

// Normalized trims the name, fills an empty name and normalizes the loan.
// The loan pointer is replaced, never written through.
func (p PropertyInput) Normalized() PropertyInput {
	out := p
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		out.Name = DefaultPropertyName
	}
	if out.Loan != nil {
		l := out.Loan.Normalized()
		out.Loan = &l
	}
	return out
}

func (p PropertyInput) Validate() error {
	if len(p.Name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	nonNeg := []struct {
		name string
		v    float64
	}{
		{"purchase_price", p.PurchasePrice},
		{"monthly_rent", p.MonthlyRent},
		{"monthly_expenses", p.MonthlyExpenses},
		{"taxes_insurance_monthly", p.TaxesInsuranceMonthly},
		{"capex_reserve_monthly", p.CapexReserveMonthly},
		{"rent_growth_std", p.RentGrowthStd},
		{"expense_growth_std", p.ExpenseGrowthStd},
		{"vacancy_rate_annual", p.VacancyRateAnnual},
		{"vacancy_volatility", p.VacancyVolatility},
		{"appreciation_std", p.AppreciationStd},
		{"maintenance_shock_lambda", p.MaintenanceShockLambda},
		{"maintenance_shock_avg_cost", p.MaintenanceShockAvgCost},
	}
	for _, f := range nonNeg {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite value >= 0", f.name)
		}
	}
	if p.HoldYears < 1 {
		return errors.New("hold_years must be >= 1")
	}
	if p.Loan != nil {
		if err := p.Loan.Validate(); err != nil {
			return fmt.Errorf("loan: %w", err)
		}
	}
	return nil
}

// Months is the length of every monthly series produced for p.
func (p PropertyInput) Months() int {
	if p.HoldYears <= 0 {
		return 0
	}
	return p.HoldYears * 12
}

// OperatingExpense is the aggregate fixed monthly cost at month zero.
func (p PropertyInput) OperatingExpense() float64 {
	return p.MonthlyExpenses + p.TaxesInsuranceMonthly + p.CapexReserveMonthly
}
