package model

// SimulationResult is one stochastic run of a single property.
// Every slice has length HoldYears*12.
//
// CashFlows[last] includes the sale proceeds; OperatingCashFlows never does,
// so CashFlows[last]-OperatingCashFlows[last] == SaleValue.
type SimulationResult struct {
	CashFlows          []float64 `json:"cash_flows"`
	OperatingCashFlows []float64 `json:"operating_cash_flows"`
	Income             []float64 `json:"income"`
	Expenses           []float64 `json:"expenses"`
	VacancyLosses      []float64 `json:"vacancy_losses"`
	Maintenance        []float64 `json:"maintenance"`

	MonthlyDebt float64 `json:"monthly_debt"`

	// IRRMonthly and IRRAnnual are 0 when the root finder found no solution;
	// 0 means undefined here, not break-even.
	IRRMonthly float64 `json:"irr_monthly"`
	IRRAnnual  float64 `json:"irr_annual"`

	SaleValue        float64 `json:"total_value"`
	TotalNetCashflow float64 `json:"total_net_cashflow"`

	// Seed reproduces this run. Runs driven by a caller's generator leave it 0.
	Seed uint64 `json:"seed"`
}

// PortfolioSimulationResult holds per-month bands across Monte Carlo trials.
type PortfolioSimulationResult struct {
	HorizonMonths     int       `json:"horizon_months"`
	ExpectedMonthlyCF []float64 `json:"expected_monthly_cf"`
	P10CF             []float64 `json:"p10_cf"`
	P90CF             []float64 `json:"p90_cf"`

	Simulations int    `json:"simulations"`
	Seed        uint64 `json:"seed"`
}

// EmptyPortfolioResult is returned for zero properties or a zero horizon.
func EmptyPortfolioResult() *PortfolioSimulationResult {
	return &PortfolioSimulationResult{
		ExpectedMonthlyCF: []float64{},
		P10CF:             []float64{},
		P90CF:             []float64{},
	}
}
