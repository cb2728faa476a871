package simulation

import (
	"sort"

	"realestate-sim/internal/model"
	"realestate-sim/internal/stochastic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultSimulations = 500
	MaxSimulations     = 5000
)

// PortfolioOptions controls a Monte Carlo portfolio run.
type PortfolioOptions struct {
	// Simulations is the trial count; <= 0 means DefaultSimulations.
	Simulations int
	// Seed fixes the top-level source. nil draws one from the clock.
	Seed *uint64
	// Workers > 1 runs trials concurrently. Child seeds are always derived
	// up front in trial order, so the result does not depend on Workers.
	Workers int
}

// HorizonMonths is the longest hold across props, in months.
func HorizonMonths(props []model.PropertyInput) int {
	h := 0
	for _, p := range props {
		if m := p.Months(); m > h {
			h = m
		}
	}
	return h
}

// SimulatePortfolio runs opts.Simulations independent trials. A trial
// simulates every property with its own child seed and sums their cash flows
// month by month, zero-padding shorter holds to the horizon. The trial x month
// matrix is reduced column-wise to the mean and the 10th/90th percentiles; the
// mean is clamped into [p10, p90].
func (e *Engine) SimulatePortfolio(props []model.PropertyInput, opts PortfolioOptions) *model.PortfolioSimulationResult {
	horizon := HorizonMonths(props)
	if len(props) == 0 || horizon <= 0 {
		return model.EmptyPortfolioResult()
	}

	sims := opts.Simulations
	if sims <= 0 {
		sims = DefaultSimulations
	}
	seed := stochastic.ResolveSeed(opts.Seed)

	// The top-level source is only ever read here, sequentially.
	top := stochastic.NewSource(seed)
	childSeeds := make([][]uint64, sims)
	for s := range childSeeds {
		row := make([]uint64, len(props))
		for p := range props {
			row[p] = stochastic.ChildSeed(top)
		}
		childSeeds[s] = row
	}

	trials := mat.NewDense(sims, horizon, nil)
	runTrial := func(s int) {
		total := make([]float64, horizon)
		for p, prop := range props {
			res := e.Run(prop, stochastic.NewSeeded(childSeeds[s][p]))
			floats.Add(total[:len(res.CashFlows)], res.CashFlows)
		}
		trials.SetRow(s, total)
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for s := 0; s < sims; s++ {
			s := s
			g.Go(func() error {
				runTrial(s)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for s := 0; s < sims; s++ {
			runTrial(s)
		}
	}

	out := &model.PortfolioSimulationResult{
		HorizonMonths:     horizon,
		ExpectedMonthlyCF: make([]float64, horizon),
		P10CF:             make([]float64, horizon),
		P90CF:             make([]float64, horizon),
		Simulations:       sims,
		Seed:              seed,
	}
	col := make([]float64, sims)
	for m := 0; m < horizon; m++ {
		mat.Col(col, m, trials)
		mean := stat.Mean(col, nil)
		sort.Float64s(col)
		p10, p90 := Percentile(col, 0.10), Percentile(col, 0.90)
		// the reported expectation always sits inside the band; rare heavy
		// shocks would otherwise drag the sample mean below p10
		out.ExpectedMonthlyCF[m] = clamp(mean, p10, p90)
		out.P10CF[m] = p10
		out.P90CF[m] = p90
	}
	return out
}
