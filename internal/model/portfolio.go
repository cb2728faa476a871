package model

import "time"

// PortfolioInput is the request shape for portfolio-level simulation.
type PortfolioInput struct {
	Properties []PropertyInput `json:"properties" yaml:"properties"`
}

// PortfolioEntry is a stored property together with the headline numbers of
// one simulation run. Monthly series are deliberately not kept.
type PortfolioEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PropertyInput

	MonthlyDebt float64 `json:"monthly_debt"`
	IRRMonthly  float64 `json:"irr_monthly"`
	IRRAnnual   float64 `json:"irr_annual"`
	TotalValue  float64 `json:"total_value"`
}

// NewPortfolioEntry summarizes res for prop.
func NewPortfolioEntry(id string, prop PropertyInput, res *SimulationResult, now time.Time) PortfolioEntry {
	e := PortfolioEntry{
		ID:            id,
		CreatedAt:     now,
		PropertyInput: prop,
	}
	if res != nil {
		e.MonthlyDebt = res.MonthlyDebt
		e.IRRMonthly = res.IRRMonthly
		e.IRRAnnual = res.IRRAnnual
		e.TotalValue = res.SaleValue
	}
	return e
}
