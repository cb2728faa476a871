package simulation

import (
	"bytes"
	"encoding/csv"
	"testing"

	"realestate-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatePortfolio_Empty(t *testing.T) {
	e := New()
	for _, props := range [][]model.PropertyInput{nil, {}} {
		res := e.SimulatePortfolio(props, PortfolioOptions{Simulations: 10})
		require.NotNil(t, res)
		assert.Equal(t, 0, res.HorizonMonths)
		assert.NotNil(t, res.ExpectedMonthlyCF)
		assert.Empty(t, res.ExpectedMonthlyCF)
		assert.Empty(t, res.P10CF)
		assert.Empty(t, res.P90CF)
	}
}

func TestSimulatePortfolio_ZeroHorizon(t *testing.T) {
	e := New()
	prop := deterministicProperty()
	prop.HoldYears = 0
	res := e.SimulatePortfolio([]model.PropertyInput{prop}, PortfolioOptions{Simulations: 3})
	assert.Equal(t, 0, res.HorizonMonths)
	assert.Empty(t, res.ExpectedMonthlyCF)
}

func TestSimulatePortfolio_SameSeedReproducible(t *testing.T) {
	e := New()
	props := []model.PropertyInput{stochasticProperty(), deterministicProperty()}
	opts := PortfolioOptions{Simulations: 50, Seed: seedPtr(2024)}

	a := e.SimulatePortfolio(props, opts)
	b := e.SimulatePortfolio(props, opts)
	assert.Equal(t, a, b)
	assert.Equal(t, uint64(2024), a.Seed)
	assert.Equal(t, 50, a.Simulations)
}

func TestSimulatePortfolio_WorkersMatchSequential(t *testing.T) {
	e := New()
	props := []model.PropertyInput{stochasticProperty(), stochasticProperty()}

	seq := e.SimulatePortfolio(props, PortfolioOptions{Simulations: 64, Seed: seedPtr(8)})
	par := e.SimulatePortfolio(props, PortfolioOptions{Simulations: 64, Seed: seedPtr(8), Workers: 4})
	assert.Equal(t, seq, par)
}

func TestSimulatePortfolio_HorizonAndPadding(t *testing.T) {
	e := New()
	short := deterministicProperty()
	short.HoldYears = 1
	long := deterministicProperty()
	long.HoldYears = 2

	res := e.SimulatePortfolio([]model.PropertyInput{short, long}, PortfolioOptions{Simulations: 5, Seed: seedPtr(1)})
	require.Equal(t, 24, res.HorizonMonths)
	require.Len(t, res.ExpectedMonthlyCF, 24)
	require.Len(t, res.P10CF, 24)
	require.Len(t, res.P90CF, 24)

	shortRes := e.SimulateProperty(short, nil)
	longRes := e.SimulateProperty(long, nil)

	assert.InDelta(t, shortRes.CashFlows[0]+longRes.CashFlows[0], res.ExpectedMonthlyCF[0], 1e-6)
	// the short hold sells in month 12 and contributes nothing afterwards
	assert.InDelta(t, shortRes.CashFlows[11]+longRes.CashFlows[11], res.ExpectedMonthlyCF[11], 1e-6)
	for m := 12; m < 24; m++ {
		assert.InDelta(t, longRes.CashFlows[m], res.ExpectedMonthlyCF[m], 1e-6)
	}
}

func TestSimulatePortfolio_IdenticalDeterministicScales(t *testing.T) {
	e := New()
	prop := deterministicProperty()
	single := e.SimulateProperty(prop, nil)

	for _, n := range []int{1, 3, 5} {
		props := make([]model.PropertyInput, n)
		for i := range props {
			props[i] = prop
		}
		res := e.SimulatePortfolio(props, PortfolioOptions{Simulations: 4, Seed: seedPtr(3)})
		for m, cf := range single.CashFlows {
			assert.InDelta(t, float64(n)*cf, res.ExpectedMonthlyCF[m], 1e-6)
			assert.InDelta(t, res.ExpectedMonthlyCF[m], res.P10CF[m], 1e-6)
			assert.InDelta(t, res.ExpectedMonthlyCF[m], res.P90CF[m], 1e-6)
		}
	}
}

func TestSimulatePortfolio_IdenticalStochasticScales(t *testing.T) {
	e := New()
	prop := stochasticProperty()
	prop.HoldYears = 1

	one := e.SimulatePortfolio([]model.PropertyInput{prop}, PortfolioOptions{Simulations: 3000, Seed: seedPtr(10)})
	three := e.SimulatePortfolio([]model.PropertyInput{prop, prop, prop}, PortfolioOptions{Simulations: 3000, Seed: seedPtr(11)})

	sumOne, sumThree := 0.0, 0.0
	for m := range one.ExpectedMonthlyCF {
		sumOne += one.ExpectedMonthlyCF[m]
		sumThree += three.ExpectedMonthlyCF[m]
	}
	assert.InEpsilon(t, 3*sumOne, sumThree, 0.02)
}

func TestSimulatePortfolio_BandsOrdered(t *testing.T) {
	e := New()
	props := []model.PropertyInput{stochasticProperty(), deterministicProperty()}
	for _, sims := range []int{1, 2, 25, 400} {
		res := e.SimulatePortfolio(props, PortfolioOptions{Simulations: sims, Seed: seedPtr(77)})
		for m := 0; m < res.HorizonMonths; m++ {
			assert.LessOrEqual(t, res.P10CF[m], res.ExpectedMonthlyCF[m], "sims=%d month=%d", sims, m)
			assert.LessOrEqual(t, res.ExpectedMonthlyCF[m], res.P90CF[m], "sims=%d month=%d", sims, m)
		}
	}
}

func TestSimulatePortfolio_HeavyShocksStayInBand(t *testing.T) {
	e := New()
	// a flat $1,500 month unless a rare, expensive shock lands
	prop := model.PropertyInput{
		Name:                    "shocky",
		PurchasePrice:           100000,
		MonthlyRent:             1500,
		MaintenanceShockLambda:  0.6,
		MaintenanceShockAvgCost: 8000,
		HoldYears:               1,
	}
	res := e.SimulatePortfolio([]model.PropertyInput{prop}, PortfolioOptions{Simulations: 200, Seed: seedPtr(7)})

	for m := 0; m < res.HorizonMonths-1; m++ {
		// most trials see no shock, so both bands sit on the flat month
		require.Equal(t, 1500.0, res.P90CF[m], "month %d", m)
		assert.LessOrEqual(t, res.P10CF[m], res.ExpectedMonthlyCF[m], "month %d", m)
		assert.LessOrEqual(t, res.ExpectedMonthlyCF[m], res.P90CF[m], "month %d", m)
	}
}

func TestSimulatePortfolio_DefaultSimulations(t *testing.T) {
	e := New()
	res := e.SimulatePortfolio([]model.PropertyInput{deterministicProperty()}, PortfolioOptions{Seed: seedPtr(1)})
	assert.Equal(t, DefaultSimulations, res.Simulations)
}

func TestSimulatePortfolio_InputsUntouched(t *testing.T) {
	e := New()
	props := []model.PropertyInput{stochasticProperty()}
	loan := *props[0].Loan
	e.SimulatePortfolio(props, PortfolioOptions{Simulations: 20, Seed: seedPtr(4), Workers: 3})
	assert.Equal(t, loan, *props[0].Loan)
	assert.Equal(t, 6.5, props[0].Loan.InterestRate)
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, 1.9, Percentile(vals, 0.10), 1e-12)
	assert.InDelta(t, 9.1, Percentile(vals, 0.90), 1e-12)
	assert.Equal(t, 1.0, Percentile(vals, 0))
	assert.Equal(t, 10.0, Percentile(vals, 1))
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
	assert.Equal(t, 0.1, Percentile([]float64{0.1, 0.1, 0.1}, 0.9))
}

func TestEncodeBandsCSV(t *testing.T) {
	e := New()
	res := e.SimulatePortfolio([]model.PropertyInput{deterministicProperty()}, PortfolioOptions{Simulations: 2, Seed: seedPtr(1)})

	var buf bytes.Buffer
	require.NoError(t, EncodeBandsCSV(&buf, Bands(res)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, res.HorizonMonths+1)
	assert.Equal(t, []string{"month", "expected_cf", "p10_cf", "p90_cf"}, records[0])
	assert.Equal(t, "1", records[1][0])
}

func TestEncodeLedgerCSV(t *testing.T) {
	e := New()
	res := e.SimulateProperty(deterministicProperty(), nil)

	var buf bytes.Buffer
	require.NoError(t, EncodeLedgerCSV(&buf, Ledger(res)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, "month", records[0][0])
	assert.Len(t, records[1], 12)
}
