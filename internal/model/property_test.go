package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanNormalized_PercentRate(t *testing.T) {
	l := Loan{LoanAmount: 100000, InterestRate: 6.5, TermYears: 30}
	n := l.Normalized()

	assert.InDelta(t, 0.065, n.InterestRate, 1e-12)
	assert.Equal(t, 30, n.AmortizationYears)
	// receiver untouched
	assert.Equal(t, 6.5, l.InterestRate)
}

func TestLoanNormalized_FractionKept(t *testing.T) {
	n := Loan{InterestRate: 0.05, TermYears: 15, AmortizationYears: 25}.Normalized()
	assert.Equal(t, 0.05, n.InterestRate)
	assert.Equal(t, 25, n.AmortizationYears)
}

func TestLoanNormalized_NegativeRateClamped(t *testing.T) {
	n := Loan{InterestRate: -0.01, TermYears: 10}.Normalized()
	assert.Equal(t, 0.0, n.InterestRate)
}

func TestNewProperty_DefaultsAndValidation(t *testing.T) {
	p := DefaultProperty()
	p.Name = "  Duplex  "
	p.PurchasePrice = 300000
	p.MonthlyRent = 2500
	p.Loan = &Loan{LoanAmount: 240000, InterestRate: 7, TermYears: 30}

	out, err := NewProperty(p)
	require.NoError(t, err)

	assert.Equal(t, "Duplex", out.Name)
	assert.InDelta(t, 0.07, out.Loan.InterestRate, 1e-12)
	assert.Equal(t, 7.0, p.Loan.InterestRate, "input loan must not be mutated")
	assert.Equal(t, 120, out.Months())
}

func TestNewProperty_EmptyName(t *testing.T) {
	p := DefaultProperty()
	p.Name = ""
	out, err := NewProperty(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultPropertyName, out.Name)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PropertyInput)
	}{
		{"negative price", func(p *PropertyInput) { p.PurchasePrice = -1 }},
		{"negative rent", func(p *PropertyInput) { p.MonthlyRent = -5 }},
		{"negative vacancy", func(p *PropertyInput) { p.VacancyRateAnnual = -0.1 }},
		{"zero hold", func(p *PropertyInput) { p.HoldYears = 0 }},
		{"bad loan term", func(p *PropertyInput) { p.Loan = &Loan{LoanAmount: 1, TermYears: 0} }},
		{"long name", func(p *PropertyInput) {
			b := make([]byte, MaxNameLength+1)
			for i := range b {
				b[i] = 'x'
			}
			p.Name = string(b)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProperty()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestOperatingExpense(t *testing.T) {
	p := PropertyInput{MonthlyExpenses: 100, TaxesInsuranceMonthly: 250, CapexReserveMonthly: 50}
	assert.Equal(t, 400.0, p.OperatingExpense())
}

func TestDecodePropertyJSON_Defaults(t *testing.T) {
	p, err := DecodePropertyJSON([]byte(`{"name":"x","purchase_price":250000,"monthly_rent":2000,"vacancy_rate_annual":0}`))
	require.NoError(t, err)

	assert.Equal(t, "x", p.Name)
	assert.Equal(t, 250000.0, p.PurchasePrice)
	// explicit zero wins over the default
	assert.Equal(t, 0.0, p.VacancyRateAnnual)
	assert.Equal(t, 0.03, p.RentGrowthMean)
	assert.Equal(t, 10, p.HoldYears)
	assert.Nil(t, p.Loan)

	_, err = DecodePropertyJSON([]byte(`{"hold_years":"ten"}`))
	assert.Error(t, err)
}
