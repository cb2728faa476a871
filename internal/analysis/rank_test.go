package analysis

import (
	"testing"

	"realestate-sim/internal/model"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/stochastic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func property(name string, rent float64) model.PropertyInput {
	p := model.DefaultProperty()
	p.Name = name
	p.PurchasePrice = 200000
	p.MonthlyRent = rent
	p.MonthlyExpenses = 300
	p.HoldYears = 5
	return p
}

func TestComputePotential_Ordered(t *testing.T) {
	e := simulation.New()
	p := ComputePotential(e, property("a", 1800), 200, stochastic.NewSource(1))

	assert.Equal(t, 200, p.Runs)
	assert.Equal(t, 0, p.Undefined)
	assert.LessOrEqual(t, p.MinIRR, p.P10IRR)
	assert.LessOrEqual(t, p.P10IRR, p.MedianIRR)
	assert.LessOrEqual(t, p.MedianIRR, p.P90IRR)
	assert.LessOrEqual(t, p.P90IRR, p.MaxIRR)
	assert.InDelta(t, p.P90IRR-p.P10IRR, p.SpreadP90P10, 1e-12)
	assert.Greater(t, p.SaleValue, 200000.0)
}

func TestComputePotential_NoRuns(t *testing.T) {
	p := ComputePotential(simulation.New(), property("a", 1800), 0, stochastic.NewSource(1))
	assert.Equal(t, "a", p.Name)
	assert.Equal(t, 0.0, p.MedianIRR)
}

func TestRankByIRR(t *testing.T) {
	e := simulation.New()
	seed := uint64(99)
	props := []model.PropertyInput{
		property("low", 1200),
		property("high", 2600),
		property("mid", 1900),
	}

	ranked := RankByIRR(e, props, 50, &seed)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Name)
	assert.Equal(t, "mid", ranked[1].Name)
	assert.Equal(t, "low", ranked[2].Name)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}

	again := RankByIRR(e, props, 50, &seed)
	assert.Equal(t, ranked, again)
}
