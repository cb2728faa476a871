package simulation

import (
	"math"

	"realestate-sim/internal/finance"
	"realestate-sim/internal/model"
	"realestate-sim/internal/stochastic"
)

// Engine projects property cash flows. It holds no state and is safe for
// concurrent use.
type Engine struct{}

// New returns an Engine.
func New() *Engine { return &Engine{} }

// SimulateProperty runs one projection of prop seeded with seed (clock-derived
// when nil). The seed actually used is reported on the result.
func (e *Engine) SimulateProperty(prop model.PropertyInput, seed *uint64) *model.SimulationResult {
	s := stochastic.ResolveSeed(seed)
	res := e.Run(prop, stochastic.NewSeeded(s))
	res.Seed = s
	return res
}

// Run projects prop month by month drawing from gen. prop is read only.
//
// Each month records income, expenses and cash flow from the current rent and
// operating expense, then grows both for the next month. The sale value is
// deterministic and is folded into the last month's cash flow.
func (e *Engine) Run(prop model.PropertyInput, gen *stochastic.Generator) *model.SimulationResult {
	months := prop.Months()

	rent := prop.MonthlyRent
	opex := prop.OperatingExpense()
	debt := monthlyDebt(prop.Loan)

	res := &model.SimulationResult{
		CashFlows:          make([]float64, months),
		OperatingCashFlows: make([]float64, months),
		Income:             make([]float64, months),
		Expenses:           make([]float64, months),
		VacancyLosses:      make([]float64, months),
		Maintenance:        make([]float64, months),
		MonthlyDebt:        debt,
	}

	operatingTotal := 0.0
	for m := 0; m < months; m++ {
		vac := gen.VacancyLoss(rent, prop.VacancyRateAnnual, prop.VacancyVolatility)
		maint := gen.MaintenanceShock(prop.MaintenanceShockLambda, prop.MaintenanceShockAvgCost)

		income := rent - vac
		expenses := opex + maint
		cf := (income - expenses) - debt

		res.Income[m] = income
		res.Expenses[m] = expenses
		res.VacancyLosses[m] = vac
		res.Maintenance[m] = maint
		res.OperatingCashFlows[m] = cf
		res.CashFlows[m] = cf
		operatingTotal += cf

		rent = gen.GrowthStep(rent, prop.RentGrowthMean, prop.RentGrowthStd)
		opex = gen.GrowthStep(opex, prop.ExpenseGrowthMean, prop.ExpenseGrowthStd)
	}

	sale := SaleValue(prop)
	res.SaleValue = sale
	if months > 0 {
		res.CashFlows[months-1] += sale
	}
	res.TotalNetCashflow = operatingTotal + sale - prop.PurchasePrice

	flows := make([]float64, 0, months+1)
	flows = append(flows, -prop.PurchasePrice)
	flows = append(flows, res.CashFlows...)

	res.IRRMonthly = finite(finance.IRR(flows))
	res.IRRAnnual = finite(finance.Annualize(res.IRRMonthly))
	return res
}

// SaleValue is the exit price after compounding the mean appreciation.
func SaleValue(prop model.PropertyInput) float64 {
	return prop.PurchasePrice * math.Pow(1+prop.AppreciationMean, float64(prop.HoldYears))
}

func monthlyDebt(loan *model.Loan) float64 {
	if loan == nil || loan.LoanAmount <= 0 {
		return 0
	}
	l := loan.Normalized()
	return finance.MonthlyPayment(l.LoanAmount, l.InterestRate, l.TermYears, l.AmortYears())
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
