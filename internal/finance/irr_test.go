package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRR_NoSignChange(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
	}{
		{"empty", nil},
		{"all positive", []float64{1, 2, 3}},
		{"all negative", []float64{-1, -2, -3}},
		{"non-negative with zeros", []float64{0, 0, 5}},
		{"non-positive with zeros", []float64{-5, 0, 0}},
		{"all zero", []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, IRR(tt.flows))
		})
	}
}

func TestIRR_LevelAnnuity(t *testing.T) {
	cases := []struct {
		price float64
		x     float64
		n     int
	}{
		{1000, 100, 12},
		{100000, 900, 120},
		{250000, 2100, 360},
		{1, 0.2, 6},
	}
	for _, c := range cases {
		flows := make([]float64, 0, c.n+1)
		flows = append(flows, -c.price)
		for i := 0; i < c.n; i++ {
			flows = append(flows, c.x)
		}
		require.Greater(t, float64(c.n)*c.x, c.price)

		r := IRR(flows)
		assert.Greater(t, r, 0.0)
		assert.Less(t, math.Abs(NPV(r, flows)), 1e-6)
		assert.Equal(t, math.Pow(1+r, 12)-1, Annualize(r))
	}
}

func TestIRR_KnownRoot(t *testing.T) {
	// -100 now, 110 next period => 10% per period.
	r := IRR([]float64{-100, 110})
	assert.InDelta(t, 0.10, r, 1e-7)
}

func TestIRR_NegativeReturn(t *testing.T) {
	// pay 100, get 50 back: -50%
	r := IRR([]float64{-100, 50})
	assert.InDelta(t, -0.5, r, 1e-7)
}

func TestIRR_RequiresWidening(t *testing.T) {
	// 1 -> 20 in one period is a 1900% return, above the initial bracket.
	r := IRR([]float64{-1, 20})
	assert.InDelta(t, 19.0, r, 1e-4)
}

func TestIRR_NoBracketReturnsZero(t *testing.T) {
	// Return far beyond what 20 widenings of the upper bound can reach.
	r := IRR([]float64{-1, 1e12})
	assert.Equal(t, 0.0, r)
}

func TestIRR_NeverNaN(t *testing.T) {
	// Alternating, loan-like shape with a large late outflow.
	flows := []float64{-100000}
	for i := 0; i < 119; i++ {
		flows = append(flows, 800)
	}
	flows = append(flows, -50000)
	r := IRR(flows)
	assert.False(t, math.IsNaN(r))
	assert.False(t, math.IsInf(r, 0))
}

func TestIRR_LongSeriesOverflowsNearMinusOne(t *testing.T) {
	steady := []float64{-100000}
	alternating := []float64{-100000}
	for i := 0; i < 119; i++ {
		steady = append(steady, -100)
		if i%2 == 0 {
			alternating = append(alternating, 500)
		} else {
			alternating = append(alternating, -50)
		}
	}
	steady = append(steady, 200000)
	alternating = append(alternating, 200000)

	for name, flows := range map[string][]float64{"steady": steady, "alternating": alternating} {
		t.Run(name, func(t *testing.T) {
			require.True(t, math.IsNaN(NPV(irrLowerBound, flows)))
			require.Greater(t, NPV(0.005, flows), 0.0)

			r := IRR(flows)
			assert.Greater(t, r, 0.005)
			assert.Less(t, r, irrUpperBound)
			assert.Less(t, math.Abs(NPV(r, flows)), 1e-3)
		})
	}
}

func TestNPV(t *testing.T) {
	assert.InDelta(t, 0.0, NPV(0.1, []float64{-100, 110}), 1e-12)
	assert.Equal(t, 6.0, NPV(0, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, NPV(0.05, nil))
}

func TestNPV_SingularityNudged(t *testing.T) {
	v := NPV(-1, []float64{5})
	assert.Equal(t, 5.0, v, "period zero is never discounted")
	v = NPV(-1, []float64{0, 1})
	assert.False(t, math.IsNaN(v))
	assert.Greater(t, v, 0.0)
}

func TestAnnualize(t *testing.T) {
	assert.InDelta(t, 0.1268250301, Annualize(0.01), 1e-9)
	assert.Equal(t, 0.0, Annualize(0))
	assert.Equal(t, 0.0, Annualize(math.NaN()))
	assert.Equal(t, 0.0, Annualize(math.Inf(1)))
}
