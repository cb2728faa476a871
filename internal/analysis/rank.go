package analysis

import (
	"sort"

	"realestate-sim/internal/model"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/stochastic"
)

type RankedPotential struct {
	Rank int
	ReturnPotential
}

// RankByIRR computes potentials per property and sorts descending by median
// annualized IRR. Properties are processed in input order from a single
// top-level source, so a fixed seed gives a fixed ranking.
func RankByIRR(e *simulation.Engine, props []model.PropertyInput, runs int, seed *uint64) []RankedPotential {
	src := stochastic.NewSource(stochastic.ResolveSeed(seed))
	out := make([]RankedPotential, 0, len(props))
	for _, prop := range props {
		p := ComputePotential(e, prop, runs, src)
		out = append(out, RankedPotential{ReturnPotential: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MedianIRR > out[j].MedianIRR
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
