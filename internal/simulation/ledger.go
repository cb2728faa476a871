package simulation

import "realestate-sim/internal/model"

// LedgerRow is one month of a single-property projection.
// This is the primary artifact for "what happened" in a run.
type LedgerRow struct {
	Month int
	Year  int

	Income       float64
	VacancyLoss  float64
	Expenses     float64
	Maintenance  float64
	NOI          float64
	DebtService  float64
	OperatingCF  float64
	SaleProceeds float64
	CashFlow     float64
	CumulativeCF float64
}

// Ledger flattens res into per-month rows. Month is 1-based.
func Ledger(res *model.SimulationResult) []LedgerRow {
	if res == nil {
		return nil
	}
	n := len(res.CashFlows)
	rows := make([]LedgerRow, 0, n)
	cum := 0.0
	for i := 0; i < n; i++ {
		cum += res.CashFlows[i]
		row := LedgerRow{
			Month:        i + 1,
			Year:         i/12 + 1,
			Income:       res.Income[i],
			VacancyLoss:  res.VacancyLosses[i],
			Expenses:     res.Expenses[i],
			Maintenance:  res.Maintenance[i],
			NOI:          res.Income[i] - res.Expenses[i],
			DebtService:  res.MonthlyDebt,
			OperatingCF:  res.OperatingCashFlows[i],
			CashFlow:     res.CashFlows[i],
			CumulativeCF: cum,
		}
		if i == n-1 {
			row.SaleProceeds = res.SaleValue
		}
		rows = append(rows, row)
	}
	return rows
}

// BandRow is one month of a portfolio result.
type BandRow struct {
	Month    int
	Expected float64
	P10      float64
	P90      float64
}

func Bands(res *model.PortfolioSimulationResult) []BandRow {
	if res == nil {
		return nil
	}
	rows := make([]BandRow, len(res.ExpectedMonthlyCF))
	for i := range rows {
		rows[i] = BandRow{
			Month:    i + 1,
			Expected: res.ExpectedMonthlyCF[i],
			P10:      res.P10CF[i],
			P90:      res.P90CF[i],
		}
	}
	return rows
}
