package analysis

import (
	"sort"

	"realestate-sim/internal/model"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/stochastic"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// ReturnPotential summarizes the IRR distribution of one property across
// independent runs. It is the per-property figure used for ranking.
type ReturnPotential struct {
	Name string

	Runs int

	// Annualized IRRs. Runs where the root finder failed report 0 and are
	// counted in Undefined rather than in the statistics.
	MinIRR    float64
	MaxIRR    float64
	MeanIRR   float64
	P10IRR    float64
	MedianIRR float64
	P90IRR    float64
	Undefined int

	SpreadP90P10 float64

	MonthlyDebt float64
	SaleValue   float64
}

// ComputePotential runs prop runs times, one child seed per run drawn from src.
func ComputePotential(e *simulation.Engine, prop model.PropertyInput, runs int, src rand.Source) ReturnPotential {
	p := ReturnPotential{Name: prop.Name, Runs: runs}
	if runs <= 0 {
		return p
	}

	vals := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		res := e.Run(prop, stochastic.NewSeeded(stochastic.ChildSeed(src)))
		if i == 0 {
			p.MonthlyDebt = res.MonthlyDebt
			p.SaleValue = res.SaleValue
		}
		if res.IRRMonthly == 0 {
			p.Undefined++
			continue
		}
		vals = append(vals, res.IRRAnnual)
	}
	if len(vals) == 0 {
		return p
	}

	sort.Float64s(vals)
	p.MinIRR = vals[0]
	p.MaxIRR = vals[len(vals)-1]
	p.MeanIRR = stat.Mean(vals, nil)
	p.P10IRR = simulation.Percentile(vals, 0.10)
	p.MedianIRR = simulation.Percentile(vals, 0.50)
	p.P90IRR = simulation.Percentile(vals, 0.90)
	p.SpreadP90P10 = p.P90IRR - p.P10IRR
	return p
}
